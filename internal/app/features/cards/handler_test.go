package cards_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/cardhub/internal/app/features/cards"
	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	cardstore "github.com/dalemusser/cardhub/internal/app/store/cards"
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/indexes"
	"github.com/dalemusser/cardhub/internal/domain/models"
	"github.com/dalemusser/cardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type env struct {
	h        *cards.Handler
	store    *cardstore.Store
	fixtures *testutil.Fixtures
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	logger := zap.NewNop()
	store := cardstore.New(db, 0)
	h := cards.NewHandler(store, nil, uierrors.NewErrorLogger(logger), logger)
	return env{h: h, store: store, fixtures: testutil.NewFixtures(t, db)}
}

func cardBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"subtitle":    "Coffee & more",
		"description": "Best espresso in town",
		"phone":       "050-1234567",
		"email":       "Shop@Example.com",
		"web":         "https://example.com",
		"image":       map[string]string{"url": "", "alt": ""},
		"address": map[string]any{
			"country": "Israel", "city": "Haifa", "street": "Herzl", "houseNumber": 3,
		},
	}
}

func withPhone(body map[string]any, phone string) map[string]any {
	body["phone"] = phone
	return body
}

func withID(req *http.Request, id primitive.ObjectID) *http.Request {
	return testutil.WithChiURLParam(req, "id", id.Hex())
}

func TestHandleCreate_AllocatesBizNumbers(t *testing.T) {
	e := newEnv(t)
	biz := testutil.BusinessPrincipal()

	for i, want := range []int64{100, 101} {
		rec := testutil.NewRecorder()
		e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest(http.MethodPost, "/api/cards", cardBody("Cafe"), biz))
		rec.AssertStatus(t, http.StatusCreated)

		var got models.Card
		rec.DecodeJSON(t, &got)
		if got.BizNumber != want {
			t.Errorf("card %d: bizNumber = %d, want %d", i, got.BizNumber, want)
		}
		if got.UserID != biz.ID {
			t.Errorf("card %d: owner = %s, want caller", i, got.UserID.Hex())
		}
		if got.Email != "shop@example.com" {
			t.Errorf("card %d: email = %q", i, got.Email)
		}
	}
}

func TestHandleCreate_ExplicitBizNumber(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fixtures.CreateCard(ctx, primitive.NewObjectID(), "Taken", 500)

	body := cardBody("Cafe")
	body["bizNumber"] = 500
	rec := testutil.NewRecorder()
	e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest(http.MethodPost, "/api/cards", body, testutil.BusinessPrincipal()))
	rec.AssertStatus(t, http.StatusConflict)

	body["bizNumber"] = 777
	rec = testutil.NewRecorder()
	e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest(http.MethodPost, "/api/cards", body, testutil.BusinessPrincipal()))
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"bizNumber":777`)
}

func TestHandleCreate_Refusals(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		p    *auth.Principal
		body any
		want int
	}{
		{"not business user", testutil.RegularPrincipal(), cardBody("Cafe"), http.StatusForbidden},
		{"admin without business flag", testutil.AdminPrincipal(), cardBody("Cafe"), http.StatusForbidden},
		{"empty body", testutil.BusinessPrincipal(), nil, http.StatusBadRequest},
		{"short title", testutil.BusinessPrincipal(), cardBody("C"), http.StatusBadRequest},
		{"landline phone", testutil.BusinessPrincipal(), withPhone(cardBody("Cafe"), "04-8123456"), http.StatusBadRequest},
		{"unhyphenated mobile", testutil.BusinessPrincipal(), withPhone(cardBody("Cafe"), "0501234567"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest(http.MethodPost, "/api/cards", tt.body, tt.p))
			rec.AssertStatus(t, tt.want)
		})
	}
}

func TestServeListAndMyCards(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := testutil.BusinessPrincipal()
	e.fixtures.CreateCard(ctx, me.ID, "Mine", 100)
	e.fixtures.CreateCard(ctx, primitive.NewObjectID(), "Theirs", 101)

	rec := testutil.NewRecorder()
	e.h.ServeList(rec, testutil.NewRequest(http.MethodGet, "/api/cards"))
	rec.AssertStatus(t, http.StatusOK)
	var all []models.Card
	rec.DecodeJSON(t, &all)
	if len(all) != 2 {
		t.Errorf("list returned %d cards, want 2", len(all))
	}

	rec = testutil.NewRecorder()
	e.h.ServeMyCards(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/api/cards/my-cards", nil, me))
	rec.AssertStatus(t, http.StatusOK)
	var mine []models.Card
	rec.DecodeJSON(t, &mine)
	if len(mine) != 1 || mine[0].Title != "Mine" {
		t.Errorf("my-cards = %+v", mine)
	}
}

func TestServeCard(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := e.fixtures.CreateCard(ctx, primitive.NewObjectID(), "Cafe", 100)

	rec := testutil.NewRecorder()
	e.h.ServeCard(rec, withID(testutil.NewRequest(http.MethodGet, "/"), c.ID))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	e.h.ServeCard(rec, withID(testutil.NewRequest(http.MethodGet, "/"), primitive.NewObjectID()))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = testutil.NewRecorder()
	e.h.ServeCard(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/"), "id", "zzz"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleUpdate(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.BusinessPrincipal()
	c := e.fixtures.CreateCard(ctx, owner.ID, "Cafe", 100)

	body := cardBody("Renamed")
	body["bizNumber"] = 999

	rec := testutil.NewRecorder()
	e.h.HandleUpdate(rec, withID(testutil.NewAuthenticatedRequest(http.MethodPut, "/", body, testutil.AdminPrincipal()), c.ID))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	e.h.HandleUpdate(rec, withID(testutil.NewAuthenticatedRequest(http.MethodPut, "/", body, owner), c.ID))
	rec.AssertStatus(t, http.StatusOK)
	var got models.Card
	rec.DecodeJSON(t, &got)
	if got.Title != "Renamed" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.BizNumber != 100 {
		t.Errorf("bizNumber changed by update: %d", got.BizNumber)
	}

	rec = testutil.NewRecorder()
	e.h.HandleUpdate(rec, withID(testutil.NewAuthenticatedRequest(http.MethodPut, "/", body, owner), primitive.NewObjectID()))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleToggleLike(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := e.fixtures.CreateCard(ctx, primitive.NewObjectID(), "Cafe", 100)
	fan := testutil.RegularPrincipal()

	for i, wantLiked := range []bool{true, false} {
		rec := testutil.NewRecorder()
		e.h.HandleToggleLike(rec, withID(testutil.NewAuthenticatedRequest(http.MethodPatch, "/", nil, fan), c.ID))
		rec.AssertStatus(t, http.StatusOK)
		var got models.Card
		rec.DecodeJSON(t, &got)
		if got.LikedBy(fan.ID) != wantLiked {
			t.Errorf("toggle %d: liked = %v, want %v", i, !wantLiked, wantLiked)
		}
	}
}

func TestHandleDelete(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.BusinessPrincipal()
	mine := e.fixtures.CreateCard(ctx, owner.ID, "Mine", 100)
	other := e.fixtures.CreateCard(ctx, primitive.NewObjectID(), "Other", 101)

	tests := []struct {
		name string
		id   primitive.ObjectID
		p    *auth.Principal
		want int
	}{
		{"stranger", mine.ID, testutil.RegularPrincipal(), http.StatusForbidden},
		{"owner", mine.ID, owner, http.StatusOK},
		{"admin", other.ID, testutil.AdminPrincipal(), http.StatusOK},
		{"already gone", other.ID, testutil.AdminPrincipal(), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			e.h.HandleDelete(rec, withID(testutil.NewAuthenticatedRequest(http.MethodDelete, "/", nil, tt.p), tt.id))
			rec.AssertStatus(t, tt.want)
		})
	}
}

func TestHandleReassignBizNumber(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := e.fixtures.CreateCard(ctx, primitive.NewObjectID(), "A", 100)
	b := e.fixtures.CreateCard(ctx, primitive.NewObjectID(), "B", 101)

	tests := []struct {
		name string
		id   primitive.ObjectID
		body any
		p    *auth.Principal
		want int
	}{
		{"non-admin refused", a.ID, map[string]int{"bizNumber": 900}, testutil.BusinessPrincipal(), http.StatusForbidden},
		{"non-admin refused before body", a.ID, nil, testutil.RegularPrincipal(), http.StatusForbidden},
		{"missing number", a.ID, map[string]int{}, testutil.AdminPrincipal(), http.StatusBadRequest},
		{"taken by another card", a.ID, map[string]int{"bizNumber": 101}, testutil.AdminPrincipal(), http.StatusConflict},
		{"unknown card", primitive.NewObjectID(), map[string]int{"bizNumber": 900}, testutil.AdminPrincipal(), http.StatusNotFound},
		{"own number", b.ID, map[string]int{"bizNumber": 101}, testutil.AdminPrincipal(), http.StatusOK},
		{"unused number", a.ID, map[string]int{"bizNumber": 900}, testutil.AdminPrincipal(), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			e.h.HandleReassignBizNumber(rec, withID(testutil.NewAuthenticatedRequest(http.MethodPatch, "/", tt.body, tt.p), tt.id))
			rec.AssertStatus(t, tt.want)
		})
	}

	got, err := e.store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.BizNumber != 900 {
		t.Errorf("bizNumber = %d, want 900", got.BizNumber)
	}
}

func TestRoutes_RequireToken(t *testing.T) {
	e := newEnv(t)
	tokens, err := auth.NewTokens("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	r := cards.Routes(e.h, tokens)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/my-cards"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewJSONRequest(http.MethodPost, "/", cardBody("Cafe")))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

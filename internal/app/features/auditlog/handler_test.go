package auditlog_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/cardhub/internal/app/features/auditlog"
	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	"github.com/dalemusser/cardhub/internal/app/store/audit"
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/domain/models"
	"github.com/dalemusser/cardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*auditlog.Handler, *audit.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := audit.New(db)
	return auditlog.NewHandler(store, uierrors.NewErrorLogger(logger), logger), store
}

func TestServeList(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := primitive.NewObjectID()
	seed := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: &alice},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &alice, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventCardCreated, Success: true},
	}
	for _, e := range seed {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	tests := []struct {
		name  string
		query string
		code  int
		count int
	}{
		{"all", "", http.StatusOK, 3},
		{"by user", "?user_id=" + alice.Hex(), http.StatusOK, 2},
		{"by type", "?event_type=" + audit.EventLoginSuccess, http.StatusOK, 1},
		{"by category", "?category=" + audit.CategoryAdmin, http.StatusOK, 1},
		{"limit", "?limit=2", http.StatusOK, 2},
		{"since future", "?since=" + time.Now().Add(time.Hour).UTC().Format(time.RFC3339), http.StatusOK, 0},
		{"bad user", "?user_id=nope", http.StatusBadRequest, -1},
		{"bad limit", "?limit=0", http.StatusBadRequest, -1},
		{"bad since", "?since=yesterday", http.StatusBadRequest, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.ServeList(rec, testutil.NewRequest(http.MethodGet, "/api/audit"+tt.query))
			rec.AssertStatus(t, tt.code)
			if tt.count < 0 {
				return
			}
			var got []audit.Event
			rec.DecodeJSON(t, &got)
			if len(got) != tt.count {
				t.Errorf("got %d events, want %d", len(got), tt.count)
			}
		})
	}
}

func TestRoutes_AdminOnly(t *testing.T) {
	h, _ := newTestHandler(t)
	tokens, err := auth.NewTokens("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	r := auditlog.Routes(h, tokens)

	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"regular user", &models.User{ID: primitive.NewObjectID()}, http.StatusForbidden},
		{"admin", &models.User{ID: primitive.NewObjectID(), IsAdmin: true}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequest(http.MethodGet, "/")
			if tt.user != nil {
				tok, err := tokens.Issue(*tt.user)
				if err != nil {
					t.Fatalf("Issue: %v", err)
				}
				req.Header.Set("Authorization", tok)
			}
			rec := testutil.NewRecorder()
			r.ServeHTTP(rec, req)
			rec.AssertStatus(t, tt.want)
		})
	}
}

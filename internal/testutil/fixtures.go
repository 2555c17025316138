package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/cardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the plain-text password of every fixture user.
const FixturePassword = "Abc!1234"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a regular user whose password is FixturePassword.
func (f *Fixtures) CreateUser(ctx context.Context, first, last, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, first, last, email, false, false)
}

// CreateAdmin inserts an admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, first, last, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, first, last, email, true, false)
}

// CreateBusinessUser inserts a user allowed to create cards.
func (f *Fixtures) CreateBusinessUser(ctx context.Context, first, last, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, first, last, email, false, true)
}

func (f *Fixtures) insertUser(ctx context.Context, first, last, email string, isAdmin, isBusiness bool) models.User {
	f.t.Helper()

	// MinCost keeps fixture setup fast; CompareHashAndPassword reads the cost from the hash.
	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Name:           models.PersonName{First: first, Last: last},
		Phone:          "050-0000000",
		Email:          strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:   string(hash),
		Address:        testAddress(),
		IsAdmin:        isAdmin,
		IsRegisterUser: isBusiness,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCard inserts a card owned by ownerID with the given business number.
func (f *Fixtures) CreateCard(ctx context.Context, ownerID primitive.ObjectID, title string, bizNumber int64) models.Card {
	f.t.Helper()

	card := models.Card{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Subtitle:  "Subtitle",
		Phone:     "050-0000000",
		Email:     "card@example.com",
		Address:   testAddress(),
		BizNumber: bizNumber,
		Likes:     []primitive.ObjectID{},
		UserID:    ownerID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("cards").InsertOne(ctx, card); err != nil {
		f.t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateLogo inserts a logo owned by ownerID.
func (f *Fixtures) CreateLogo(ctx context.Context, ownerID primitive.ObjectID, brand string) models.Logo {
	f.t.Helper()

	logo := models.Logo{
		ID:        primitive.NewObjectID(),
		Brand:     brand,
		BrandCI:   strings.ToLower(brand),
		LogoPath:  "/logos/" + strings.ToLower(brand) + ".png",
		FileName:  strings.ToLower(brand) + ".png",
		UserID:    ownerID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("logos").InsertOne(ctx, logo); err != nil {
		f.t.Fatalf("failed to create test logo: %v", err)
	}
	return logo
}

// CreateStock inserts a stock line.
func (f *Fixtures) CreateStock(ctx context.Context, brand, model string, quantity int) models.Stock {
	f.t.Helper()

	now := time.Now().UTC()
	st := models.Stock{
		ID:        primitive.NewObjectID(),
		Brand:     brand,
		Model:     model,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("stock").InsertOne(ctx, st); err != nil {
		f.t.Fatalf("failed to create test stock: %v", err)
	}
	return st
}

func testAddress() models.Address {
	return models.Address{
		Country:     "Israel",
		City:        "Tel Aviv",
		Street:      "Herzl",
		HouseNumber: 1,
	}
}

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/cardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testKey = "test-only-key-0123456789ABCDEFGHIJ"

func newTestTokens(t *testing.T, ttl time.Duration) *Tokens {
	t.Helper()
	tok, err := NewTokens(testKey, ttl, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	return tok
}

func TestNewTokens_EmptyKey(t *testing.T) {
	if _, err := NewTokens("", time.Hour, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestIssueAndParse(t *testing.T) {
	tok := newTestTokens(t, time.Hour)
	u := models.User{ID: primitive.NewObjectID(), IsAdmin: true, IsRegisterUser: true}

	signed, err := tok.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, header := range []string{signed, "Bearer " + signed, "bearer " + signed} {
		p, err := tok.Parse(header)
		if err != nil {
			t.Fatalf("Parse(%q...): %v", header[:8], err)
		}
		if p.ID != u.ID {
			t.Errorf("ID: got %v, want %v", p.ID, u.ID)
		}
		if !p.IsAdmin || !p.IsRegisterUser {
			t.Errorf("flags not carried: %+v", p)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	tok := newTestTokens(t, time.Hour)
	if _, err := tok.Parse("  "); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestParse_WrongKey(t *testing.T) {
	a := newTestTokens(t, time.Hour)
	b, _ := NewTokens("another-key-0123456789ABCDEFGHIJKLMN", time.Hour, zap.NewNop())

	signed, err := a.Issue(models.User{ID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := b.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	tok := newTestTokens(t, time.Minute)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tok.now = func() time.Time { return base }

	signed, err := tok.Issue(models.User{ID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tok.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := tok.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestRequireSignedIn(t *testing.T) {
	tok := newTestTokens(t, time.Hour)
	u := models.User{ID: primitive.NewObjectID()}
	signed, _ := tok.Issue(u)

	var seen *Principal
	h := tok.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "not.a.token", http.StatusUnauthorized},
		{"valid", signed, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cards/my-cards", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
	if seen == nil || seen.ID != u.ID {
		t.Errorf("principal not placed in context: %+v", seen)
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequireAdmin(ok)

	tests := []struct {
		name string
		p    *Principal
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"regular user", &Principal{ID: primitive.NewObjectID()}, http.StatusForbidden},
		{"admin", &Principal{ID: primitive.NewObjectID(), IsAdmin: true}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.p != nil {
				req = WithTestUser(req, tt.p)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

// Package auth issues and verifies the signed tokens API clients send in the
// Authorization header, and carries the verified principal in the request
// context.
//
// Terminology: User Identifiers
//   - UserID / userID / user_id: the MongoDB ObjectID (_id) of a user record
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Principal & context                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// Principal is the verified caller of a request.
type Principal struct {
	ID             primitive.ObjectID
	IsAdmin        bool
	IsRegisterUser bool
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the principal placed in context by RequireSignedIn.
func CurrentUser(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(currentUserKey).(*Principal)
	return p, ok && p != nil
}

// WithTestUser puts p in the request context, bypassing token checks.
func WithTestUser(r *http.Request, p *Principal) *http.Request {
	return withUser(r, p)
}

func withUser(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, p))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Token issuing                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// Claims is the token payload. Field names match what existing clients read.
type Claims struct {
	UserID         string `json:"_id"`
	IsRegisterUser bool   `json:"isRegisterUser"`
	IsAdmin        bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

var (
	// ErrNoToken is returned when the Authorization header is empty.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken covers bad signatures, expiry and malformed subjects.
	ErrInvalidToken = errors.New("invalid token")
)

// Tokens signs and verifies HS256 tokens.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
	log *zap.Logger
}

// NewTokens builds a Tokens. ttl <= 0 issues tokens without expiry.
func NewTokens(key string, ttl time.Duration, logger *zap.Logger) (*Tokens, error) {
	if key == "" {
		return nil, fmt.Errorf("jwt key is empty; provide ≥32 random chars")
	}
	if len(key) < 32 {
		logger.Warn("jwt key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}
	return &Tokens{key: []byte(key), ttl: ttl, now: time.Now, log: logger}, nil
}

// Issue signs a token for u.
func (t *Tokens) Issue(u models.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:         u.ID.Hex(),
		IsRegisterUser: u.IsRegisterUser,
		IsAdmin:        u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.ID.Hex(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a raw or "Bearer "-prefixed token.
func (t *Tokens) Parse(header string) (*Principal, error) {
	raw := strings.TrimSpace(header)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return nil, ErrNoToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return &Principal{ID: id, IsAdmin: claims.IsAdmin, IsRegisterUser: claims.IsRegisterUser}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn rejects requests without a valid token with 401 and puts
// the principal in context otherwise.
func (t *Tokens) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := t.Parse(r.Header.Get("Authorization"))
		switch {
		case errors.Is(err, ErrNoToken):
			respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided")
			return
		case err != nil:
			t.log.Debug("token rejected", zap.Error(err))
			respond.Error(w, http.StatusUnauthorized, "Access denied. Invalid token")
			return
		}
		next.ServeHTTP(w, withUser(r, p))
	})
}

// RequireAdmin must run after RequireSignedIn.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := CurrentUser(r)
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided")
			return
		}
		if !p.IsAdmin {
			respond.Error(w, http.StatusForbidden, "User is not Admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

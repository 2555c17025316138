// Package lockout keeps a short history of failed password checks per user
// and refuses login while the threshold-crossing failure is recent.
//
// Per user the tracker moves Normal → Locked when the Threshold-th failure
// lands and all retained failures fall inside Window; it returns to Normal
// once Window has elapsed since that failure. There is no unlock action and
// a successful login does not clear history.
//
// Record and check are separate read-then-write sequences against the store
// and are not atomic. Two concurrent failures for one user can briefly leave
// Threshold+1 records; the next failure evicts back down.
package lockout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/cardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultThreshold = 3
	DefaultWindow    = 24 * time.Hour
)

var (
	// ErrLockedOut is matched with errors.Is on a *LockedOutError.
	ErrLockedOut = errors.New("locked out")
	// ErrStorageUnavailable wraps failures of the failure store.
	ErrStorageUnavailable = errors.New("login failure storage unavailable")
)

// LockedOutError tells the caller when login will be accepted again.
type LockedOutError struct {
	Until time.Time
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("Too many failed login attempts. Try again after %s", e.Until.UTC().Format(time.RFC1123))
}

func (e *LockedOutError) Is(target error) bool { return target == ErrLockedOut }

// Store is the persistence the tracker needs. loginfailures.Store satisfies it.
type Store interface {
	Insert(ctx context.Context, userID primitive.ObjectID, at time.Time) error
	Count(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteOldest(ctx context.Context, userID primitive.ObjectID) error
	// Newest returns up to limit records for userID, newest first.
	Newest(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.LoginFailure, error)
}

// Tracker is stateless apart from its store.
type Tracker struct {
	store     Store
	log       *zap.Logger
	threshold int
	window    time.Duration
	now       func() time.Time
}

// New builds a Tracker. Non-positive threshold or window fall back to the
// defaults.
func New(store Store, threshold int, window time.Duration, logger *zap.Logger) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{store: store, log: logger, threshold: threshold, window: window, now: time.Now}
}

// Threshold is the number of retained failures that triggers a check.
func (t *Tracker) Threshold() int { return t.threshold }

// RecordFailure stores a failure stamped now and evicts the oldest record
// when more than Threshold remain. Errors are logged and dropped; the login
// has already failed for its own reason.
func (t *Tracker) RecordFailure(ctx context.Context, userID primitive.ObjectID) {
	if err := t.store.Insert(ctx, userID, t.now().UTC()); err != nil {
		t.log.Error("record login failure", zap.String("user_id", userID.Hex()), zap.Error(err))
		return
	}
	n, err := t.store.Count(ctx, userID)
	if err != nil {
		t.log.Error("count login failures", zap.String("user_id", userID.Hex()), zap.Error(err))
		return
	}
	if n <= int64(t.threshold) {
		return
	}
	if err := t.store.DeleteOldest(ctx, userID); err != nil {
		t.log.Error("evict oldest login failure", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
}

// Count returns how many failures are retained for userID. Callers run
// CheckLockout only when this equals Threshold.
func (t *Tracker) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := t.store.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return n, nil
}

// CheckLockout returns a *LockedOutError when the newest of the retained
// failures is inside Window and so are all the ones before it.
func (t *Tracker) CheckLockout(ctx context.Context, userID primitive.ObjectID) error {
	recs, err := t.store.Newest(ctx, userID, t.threshold)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if len(recs) < t.threshold {
		return nil
	}

	latest, earliest := recs[0].CreatedAt, recs[len(recs)-1].CreatedAt
	until := latest.Add(t.window)
	if latest.Sub(earliest) <= t.window && t.now().Before(until) {
		return &LockedOutError{Until: until}
	}
	return nil
}

// Package biznumber hands out business numbers for cards and lets an admin
// move a card to a different number.
//
// Allocation reads the highest stored number and adds one. The read and the
// following insert are not atomic; two concurrent creates can pick the same
// number, in which case the unique index rejects the second write and the
// store reports ErrConflict.
package biznumber

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSeed is the first number handed out when no cards exist.
const DefaultSeed int64 = 100

var (
	ErrPermissionDenied   = errors.New("only an admin may change a business number")
	ErrConflict           = errors.New("business number is already taken")
	ErrNotFound           = errors.New("card not found")
	ErrStorageUnavailable = errors.New("card storage unavailable")
)

// Store is what the allocator reads and writes. The card store satisfies it.
type Store interface {
	// HighestBizNumber reports the largest stored number, or ok=false when
	// there are no cards.
	HighestBizNumber(ctx context.Context) (n int64, ok bool, err error)
	// CardIDByBizNumber reports which card holds n, or ok=false.
	CardIDByBizNumber(ctx context.Context, n int64) (id primitive.ObjectID, ok bool, err error)
	// SetBizNumber writes n to the card and returns it, or nil when no card
	// has that id. A duplicate key is returned wrapping ErrConflict.
	SetBizNumber(ctx context.Context, cardID primitive.ObjectID, n int64) (*models.Card, error)
}

type Allocator struct {
	store Store
	seed  int64
}

// New returns an Allocator. A non-positive seed means DefaultSeed.
func New(store Store, seed int64) *Allocator {
	if seed <= 0 {
		seed = DefaultSeed
	}
	return &Allocator{store: store, seed: seed}
}

// Allocate returns the next business number.
func (a *Allocator) Allocate(ctx context.Context) (int64, error) {
	n, ok, err := a.store.HighestBizNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return a.seed, nil
	}
	return n + 1, nil
}

// Reassign gives the card number n. Only admins may do this. Moving a card
// to the number it already holds succeeds without change.
func (a *Allocator) Reassign(ctx context.Context, cardID primitive.ObjectID, n int64, requester auth.Principal) (*models.Card, error) {
	if !requester.IsAdmin {
		return nil, ErrPermissionDenied
	}
	holder, taken, err := a.store.CardIDByBizNumber(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if taken && holder != cardID {
		return nil, ErrConflict
	}

	card, err := a.store.SetBizNumber(ctx, cardID, n)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if card == nil {
		return nil, ErrNotFound
	}
	return card, nil
}

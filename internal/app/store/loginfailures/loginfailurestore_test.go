package loginfailurestore_test

import (
	"testing"
	"time"

	loginfailurestore "github.com/dalemusser/cardhub/internal/app/store/loginfailures"
	"github.com/dalemusser/cardhub/internal/app/system/lockout"
	"github.com/dalemusser/cardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ lockout.Store = (*loginfailurestore.Store)(nil)

func TestStore_InsertAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginfailurestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := primitive.NewObjectID()
	other := primitive.NewObjectID()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if err := store.Insert(ctx, user, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	if err := store.Insert(ctx, other, base); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	n, err := store.Count(ctx, user)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count: got %d, want 2", n)
	}
}

func TestStore_NewestAndDeleteOldest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginfailurestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := primitive.NewObjectID()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if err := store.Insert(ctx, user, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	recs, err := store.Newest(ctx, user, 3)
	if err != nil {
		t.Fatalf("Newest failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Newest: got %d records, want 3", len(recs))
	}
	if !recs[0].CreatedAt.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("Newest[0]: got %v, want %v", recs[0].CreatedAt, base.Add(3*time.Minute))
	}
	if !recs[2].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("Newest[2]: got %v, want %v", recs[2].CreatedAt, base.Add(time.Minute))
	}

	if err := store.DeleteOldest(ctx, user); err != nil {
		t.Fatalf("DeleteOldest failed: %v", err)
	}
	recs, err = store.Newest(ctx, user, 10)
	if err != nil {
		t.Fatalf("Newest failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("after delete: got %d records, want 3", len(recs))
	}
	for _, r := range recs {
		if r.CreatedAt.Equal(base) {
			t.Error("oldest record still present")
		}
	}
}

func TestStore_DeleteOldest_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginfailurestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.DeleteOldest(ctx, primitive.NewObjectID()); err != nil {
		t.Errorf("DeleteOldest on empty history: %v", err)
	}
}

func TestTracker_WithMongoStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginfailurestore.New(db)
	tracker := lockout.New(store, 0, 0, testutil.Logger(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := primitive.NewObjectID()
	for i := 0; i < 5; i++ {
		tracker.RecordFailure(ctx, user)
	}

	n, err := tracker.Count(ctx, user)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("Count: got %d, want 3", n)
	}
	if err := tracker.CheckLockout(ctx, user); err == nil {
		t.Error("expected lockout after repeated failures")
	}
}

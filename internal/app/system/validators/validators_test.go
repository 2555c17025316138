package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/cardhub/internal/app/system/validators"
	"github.com/dalemusser/cardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) *mongo.Database {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "cards", "login_failures", "logos", "customer_requests", "stock", "audit_events"} {
		if !have[want] {
			t.Errorf("collection %q was not created", want)
		}
	}
}

func address() bson.M {
	return bson.M{"country": "Israel", "city": "Haifa", "street": "Herzl", "house_number": 3}
}

func TestValidators(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	owner := primitive.NewObjectID()

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{"user valid", "users", bson.M{
			"name": bson.M{"first": "Dana", "last": "Levi"}, "email": "dana@example.com",
			"password": "$2a$10$hash", "address": address(), "is_admin": false, "created_at": now,
		}, false},
		{"user missing password", "users", bson.M{
			"name": bson.M{"first": "Dana", "last": "Levi"}, "email": "dana@example.com", "created_at": now,
		}, true},
		{"user bad email", "users", bson.M{
			"name": bson.M{"first": "Dana", "last": "Levi"}, "email": "dana", "password": "x", "created_at": now,
		}, true},
		{"user blank first name", "users", bson.M{
			"name": bson.M{"first": "  ", "last": "Levi"}, "email": "d@e.co", "password": "x", "created_at": now,
		}, true},

		{"card valid", "cards", bson.M{
			"title": "Cafe", "biz_number": int64(100), "user_id": owner, "likes": bson.A{}, "address": address(), "created_at": now,
		}, false},
		{"card zero biz number", "cards", bson.M{
			"title": "Cafe", "biz_number": 0, "user_id": owner, "created_at": now,
		}, true},
		{"card string biz number", "cards", bson.M{
			"title": "Cafe", "biz_number": "100", "user_id": owner, "created_at": now,
		}, true},
		{"card mobile phone", "cards", bson.M{
			"title": "Cafe", "biz_number": 102, "phone": "052-7654321", "user_id": owner, "created_at": now,
		}, false},
		{"card landline phone", "cards", bson.M{
			"title": "Cafe", "biz_number": 103, "phone": "04 8123456 1", "user_id": owner, "created_at": now,
		}, true},
		{"card likes not ids", "cards", bson.M{
			"title": "Cafe", "biz_number": 101, "user_id": owner, "likes": bson.A{"someone"}, "created_at": now,
		}, true},

		{"login failure valid", "login_failures", bson.M{"user_id": owner, "created_at": now}, false},
		{"login failure string user", "login_failures", bson.M{"user_id": owner.Hex(), "created_at": now}, true},

		{"logo valid", "logos", bson.M{"brand": "Acme", "logo_path": "/a.png", "file_name": "a.png", "user_id": owner}, false},
		{"logo missing path", "logos", bson.M{"brand": "Acme", "file_name": "a.png", "user_id": owner}, true},

		{"request valid", "customer_requests", bson.M{"name": "Dana", "email": "d@e.co", "created_at": now}, false},
		{"request missing email", "customer_requests", bson.M{"name": "Dana", "created_at": now}, true},

		{"stock anything", "stock", bson.M{"Brand": "", "Quantity": 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("insert failed: %v", err)
			}
		})
	}
}

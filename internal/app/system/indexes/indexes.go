// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Index names other packages rely on.
const (
	UsersEmailUnique     = "uniq_users_email"
	CardsBizNumberUnique = "uniq_cards_biznumber"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	sets := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"users", ensureUsers},
		{"cards", ensureCards},
		// the login handler reads these on every password attempt
		{"login_failures", ensureLoginFailures},
		{"logos", ensureLogos},
		{"stock", ensureStock},
		{"customer_requests", ensureCustomerRequests},
		{"audit_events", ensureAuditEvents},
	}
	for _, s := range sets {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconciling one collection's desired indexes                               */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

type desired struct {
	model  mongo.IndexModel
	name   string
	unique bool
	sig    string
}

func describe(m mongo.IndexModel) desired {
	d := desired{model: m, sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		if m.Options.Unique != nil {
			d.unique = *m.Options.Unique
		}
	}
	return d
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(p *bool) bool { return p != nil && *p }

// isDuplicateKeyErr recognises E11000 across driver error shapes.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB report IndexOptionsConflict when the same keys already exist
// under another name or with other options.
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

// duplicateHint points an operator at the aggregation that finds offending
// documents when a unique index cannot be built.
func duplicateHint(coll, sig string) string {
	switch {
	case coll == "users" && strings.Contains(sig, "email:1"):
		return " (find duplicates: db.users.aggregate([{ $group: { _id: \"$email\", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }]))"
	case coll == "cards" && strings.Contains(sig, "biz_number:1"):
		return " (find duplicates: db.cards.aggregate([{ $group: { _id: \"$biz_number\", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }]))"
	}
	return ""
}

func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

// recreate drops the index called oldName and creates d in its place.
func recreate(ctx context.Context, coll *mongo.Collection, oldName string, d desired) error {
	if _, err := coll.Indexes().DropOne(ctx, oldName); err != nil {
		return fmt.Errorf("drop %s failed: %w", oldName, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, d.model); err != nil {
		if isDuplicateKeyErr(err) && d.unique {
			return fmt.Errorf("cannot create unique index, duplicates present%s", duplicateHint(coll.Name(), d.sig))
		}
		return err
	}
	return nil
}

func ensureOne(ctx context.Context, coll *mongo.Collection, d desired) error {
	start := time.Now()
	fields := []zap.Field{
		zap.String("collection", coll.Name()),
		zap.String("name", d.name),
		zap.String("keys", d.sig),
		zap.Bool("unique", d.unique),
	}
	zap.L().Info("ensuring index", fields...)

	if ex, ok := listIndexes(ctx, coll)[d.sig]; ok {
		switch {
		case isUnique(ex.Unique) != d.unique:
			// e.g. upgrading a plain index to unique
			if err := recreate(ctx, coll, ex.Name, d); err != nil {
				return err
			}
			zap.L().Info("index dropped and recreated", append(fields, zap.Duration("took", time.Since(start)))...)
		case d.name != "" && ex.Name != d.name:
			if err := recreate(ctx, coll, ex.Name, d); err != nil {
				return err
			}
			zap.L().Info("index renamed", append(fields, zap.String("from", ex.Name), zap.Duration("took", time.Since(start)))...)
		default:
			zap.L().Info("reusing existing index", append(fields, zap.Duration("took", time.Since(start)))...)
		}
		return nil
	}

	created, err := coll.Indexes().CreateOne(ctx, d.model)
	if err == nil {
		zap.L().Info("index ensured", append(fields, zap.String("created_name", created), zap.Duration("took", time.Since(start)))...)
		return nil
	}
	if isOptionsConflictErr(err) {
		// lost a race with another process creating the same keys
		if ex, ok := listIndexes(ctx, coll)[d.sig]; ok {
			if isUnique(ex.Unique) == d.unique {
				zap.L().Info("reusing existing index (post-conflict)", append(fields, zap.Duration("took", time.Since(start)))...)
				return nil
			}
			return recreate(ctx, coll, ex.Name, d)
		}
	}
	if isDuplicateKeyErr(err) && d.unique {
		err = fmt.Errorf("cannot create unique index, duplicates present%s", duplicateHint(coll.Name(), d.sig))
	}
	zap.L().Warn("index ensure failed", append(fields, zap.Duration("took", time.Since(start)), zap.Error(err))...)
	return err
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	for _, m := range models {
		d := describe(m)
		if err := ensureOne(ctx, coll, d); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(UsersEmailUnique),
		},
		// admin user listing, newest first
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_created_id"),
		},
	})
}

func ensureCards(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("cards"), []mongo.IndexModel{
		// Also serves the allocator's highest-number lookup.
		{
			Keys:    bson.D{{Key: "biz_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(CardsBizNumberUnique),
		},
		// my-cards
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_cards_user_created"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_cards_created"),
		},
	})
}

func ensureLoginFailures(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("login_failures"), []mongo.IndexModel{
		// count, newest-N and evict-oldest all filter on user_id and order by created_at
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_loginfail_user_created"),
		},
	})
}

func ensureLogos(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("logos"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_logos_user"),
		},
		{
			Keys:    bson.D{{Key: "brand_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_logos_brandci_id"),
		},
	})
}

func ensureStock(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("stock"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_stock_created"),
		},
	})
}

func ensureCustomerRequests(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("customer_requests"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_custreq_created"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("audit_events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_audit_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_user_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_type_timestamp"),
		},
	})
}

// internal/app/store/loginfailures/loginfailurestore.go
package loginfailurestore

import (
	"context"
	"time"

	"github.com/dalemusser/cardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_failures")}
}

// Insert records one failed password check for userID at the given time.
func (s *Store) Insert(ctx context.Context, userID primitive.ObjectID, at time.Time) error {
	_, err := s.c.InsertOne(ctx, models.LoginFailure{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CreatedAt: at,
	})
	return err
}

// Count returns how many failures are stored for userID.
func (s *Store) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}

// DeleteOldest removes the single earliest failure for userID. It is a no-op
// when there are none.
func (s *Store) DeleteOldest(ctx context.Context, userID primitive.ObjectID) error {
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	err := s.c.FindOneAndDelete(ctx, bson.M{"user_id": userID}, opts).Err()
	if err == mongo.ErrNoDocuments {
		return nil
	}
	return err
}

// Newest returns up to limit failures for userID, most recent first.
func (s *Store) Newest(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.LoginFailure, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LoginFailure
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

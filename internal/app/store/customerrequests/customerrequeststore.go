// internal/app/store/customerrequests/customerrequeststore.go
package customerrequeststore

import (
	"context"
	"time"

	"github.com/dalemusser/cardhub/internal/app/system/normalize"
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
	return &Store{c: db.Collection("customer_requests")}
}

// Create stores a contact request.
func (s *Store) Create(ctx context.Context, cr models.CustomerRequest) (models.CustomerRequest, error) {
	cr.ID = primitive.NewObjectID()
	cr.Name = normalize.Name(cr.Name)
	cr.Email = normalize.Email(cr.Email)
	cr.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, cr); err != nil {
		return models.CustomerRequest{}, err
	}
	return cr, nil
}

// List returns requests, newest first. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int64) ([]models.CustomerRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CustomerRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

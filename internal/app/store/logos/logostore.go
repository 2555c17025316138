// internal/app/store/logos/logostore.go
package logostore

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
	return &Store{c: db.Collection("logos")}
}

// Create inserts a logo owned by l.UserID.
func (s *Store) Create(ctx context.Context, l models.Logo) (models.Logo, error) {
	l.ID = primitive.NewObjectID()
	l.Brand = normalize.Name(l.Brand)
	l.BrandCI = normalize.Fold(l.Brand)
	l.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.Logo{}, err
	}
	return l, nil
}

// GetByID returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Logo, error) {
	var l models.Logo
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all logos ordered by brand, ignoring case and accents.
func (s *Store) List(ctx context.Context) ([]models.Logo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "brand_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Logo{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogoUpdate holds the owner-editable fields.
type LogoUpdate struct {
	Brand    string
	LogoPath string
	FileName string
}

// Update returns the updated logo, or mongo.ErrNoDocuments if not found.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd LogoUpdate) (*models.Logo, error) {
	brand := normalize.Name(upd.Brand)
	set := bson.M{
		"brand":     brand,
		"brand_ci":  normalize.Fold(brand),
		"logo_path": upd.LogoPath,
		"file_name": upd.FileName,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l models.Logo
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Delete returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

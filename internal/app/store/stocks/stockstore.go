// internal/app/store/stocks/stockstore.go
package stockstore

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
	return &Store{c: db.Collection("stock")}
}

// Create inserts a stock line and stamps both timestamps.
func (s *Store) Create(ctx context.Context, st models.Stock) (models.Stock, error) {
	st.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, st); err != nil {
		return models.Stock{}, err
	}
	return st, nil
}

// GetByID returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Stock, error) {
	var st models.Stock
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// List returns every stock line, newest first.
func (s *Store) List(ctx context.Context) ([]models.Stock, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Stock{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Replace overwrites every descriptive field of the stock line and returns
// the result. CreatedAt is kept. Returns mongo.ErrNoDocuments if not found.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, st models.Stock) (*models.Stock, error) {
	set := bson.M{
		"Brand":            st.Brand,
		"Model":            st.Model,
		"Quantity":         st.Quantity,
		"Price (USD)":      st.PriceUSD,
		"Condition":        st.Condition,
		"Description":      st.Description,
		"Detail":           st.Detail,
		"Product Category": st.ProductCategory,
		"Part Number":      st.PartNumber,
		"SKU":              st.SKU,
		"Serial Number":    st.SerialNumber,
		"Location":         st.Location,
		"Status":           st.Status,
		"updatedAt":        time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Stock
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

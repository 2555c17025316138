// internal/app/store/cards/cardstore.go
package cardstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/cardhub/internal/app/system/biznumber"
	"github.com/dalemusser/cardhub/internal/app/system/normalize"
	"github.com/dalemusser/cardhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}

type Store struct {
	c     *mongo.Collection
	alloc *biznumber.Allocator
}

// New returns a card store whose allocator starts at seed when the
// collection is empty. A non-positive seed uses biznumber.DefaultSeed.
func New(db *mongo.Database, seed int64) *Store {
	s := &Store{c: db.Collection("cards")}
	s.alloc = biznumber.New(s, seed)
	return s
}

// Allocator exposes the store's business-number allocator.
func (s *Store) Allocator() *biznumber.Allocator { return s.alloc }

// Create inserts a card. A zero BizNumber is allocated immediately before
// the insert; a number already held by another card yields an error
// wrapping biznumber.ErrConflict.
func (s *Store) Create(ctx context.Context, c models.Card) (models.Card, error) {
	if c.BizNumber == 0 {
		n, err := s.alloc.Allocate(ctx)
		if err != nil {
			return models.Card{}, err
		}
		c.BizNumber = n
	}

	c.ID = primitive.NewObjectID()
	c.Email = normalize.Email(c.Email)
	c.Phone = normalize.Phone(c.Phone)
	if c.Likes == nil {
		c.Likes = []primitive.ObjectID{}
	}
	c.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Card{}, fmt.Errorf("%w: %d", biznumber.ErrConflict, c.BizNumber)
		}
		return models.Card{}, err
	}
	return c, nil
}

// GetByID loads a card. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Card, error) {
	var c models.Card
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all cards, newest first.
func (s *Store) List(ctx context.Context) ([]models.Card, error) {
	return s.find(ctx, bson.M{})
}

// ListByUser returns the cards owned by userID, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Card, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Card, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Card{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CardUpdate holds the owner-editable fields. BizNumber, likes, owner and
// creation time are not part of it.
type CardUpdate struct {
	Title       string
	Subtitle    string
	Description string
	Phone       string
	Email       string
	Web         string
	Image       models.Image
	Address     models.Address
}

// Update replaces the editable fields and returns the updated card.
// Returns mongo.ErrNoDocuments if no card has id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd CardUpdate) (*models.Card, error) {
	return s.findAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"title":       upd.Title,
		"subtitle":    upd.Subtitle,
		"description": upd.Description,
		"phone":       normalize.Phone(upd.Phone),
		"email":       normalize.Email(upd.Email),
		"web":         upd.Web,
		"image":       upd.Image,
		"address":     upd.Address,
	}})
}

// ToggleLike adds userID to the card's likes, or removes it when present.
func (s *Store) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*models.Card, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	op := "$addToSet"
	if c.LikedBy(userID) {
		op = "$pull"
	}
	return s.findAndUpdate(ctx, id, bson.M{op: bson.M{"likes": userID}})
}

// Delete removes a card and returns it. Returns mongo.ErrNoDocuments if no
// card has id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.Card, error) {
	var c models.Card
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteByUser removes every card owned by userID.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) findAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Card, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Card
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

/* -------------------------------------------------------------------------- */
/* biznumber.Store                                                             */
/* -------------------------------------------------------------------------- */

// HighestBizNumber returns the largest biz_number in use.
func (s *Store) HighestBizNumber(ctx context.Context) (int64, bool, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "biz_number", Value: -1}}).
		SetProjection(bson.M{"biz_number": 1})
	var c models.Card
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return c.BizNumber, true, nil
}

// CardIDByBizNumber returns the id of the card holding n.
func (s *Store) CardIDByBizNumber(ctx context.Context, n int64) (primitive.ObjectID, bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	var c models.Card
	err := s.c.FindOne(ctx, bson.M{"biz_number": n}, opts).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return c.ID, true, nil
}

// SetBizNumber writes n to the card. It returns nil, nil when no card has
// cardID.
func (s *Store) SetBizNumber(ctx context.Context, cardID primitive.ObjectID, n int64) (*models.Card, error) {
	c, err := s.findAndUpdate(ctx, cardID, bson.M{"$set": bson.M{"biz_number": n}})
	switch {
	case err == nil:
		return c, nil
	case err == mongo.ErrNoDocuments:
		return nil, nil
	case wafflemongo.IsDup(err):
		return nil, fmt.Errorf("%w: %d", biznumber.ErrConflict, n)
	}
	return nil, err
}

// internal/domain/models/card.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card is a business card owned by a business user.
// BizNumber is unique across all cards (enforced by uniq_cards_biznumber).
type Card struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title       string               `bson:"title" json:"title"`
	Subtitle    string               `bson:"subtitle" json:"subtitle"`
	Description string               `bson:"description" json:"description"`
	Phone       string               `bson:"phone" json:"phone"`
	Email       string               `bson:"email" json:"email"`
	Web         string               `bson:"web" json:"web"`
	Image       Image                `bson:"image" json:"image"`
	Address     Address              `bson:"address" json:"address"`
	BizNumber   int64                `bson:"biz_number" json:"bizNumber"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	UserID      primitive.ObjectID   `bson:"user_id" json:"user_id"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// LikedBy reports whether userID is in the card's likes.
func (c Card) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

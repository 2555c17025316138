// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonName is the structured display name of a user.
type PersonName struct {
	First  string `bson:"first" json:"first"`
	Middle string `bson:"middle,omitempty" json:"middle,omitempty"`
	Last   string `bson:"last" json:"last"`
}

// User is a registered account.
//
// NOTE:
//   - IsRegisterUser marks a business user; only business users may create cards.
//   - PasswordHash is never serialized to JSON.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           PersonName         `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	Email          string             `bson:"email" json:"email"` // lowercase, trimmed
	PasswordHash   string             `bson:"password" json:"-"`
	Image          Image              `bson:"image" json:"image"`
	Address        Address            `bson:"address" json:"address"`
	IsAdmin        bool               `bson:"is_admin" json:"isAdmin"`
	IsRegisterUser bool               `bson:"is_register_user" json:"isRegisterUser"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

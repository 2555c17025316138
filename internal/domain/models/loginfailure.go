// internal/domain/models/loginfailure.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginFailure captures a single failed password check.
// At most a handful are kept per user; {user_id, created_at} is indexed.
type LoginFailure struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Logo is a brand logo stored at LogoPath.
type Logo struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Brand    string             `bson:"brand" json:"brand"`
	BrandCI  string             `bson:"brand_ci" json:"-"` // folded for sorting
	LogoPath string             `bson:"logo_path" json:"logoPath"`
	FileName string             `bson:"file_name" json:"fileName"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

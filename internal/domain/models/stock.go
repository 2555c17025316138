package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock is one inventory line. Field keys match the spreadsheet columns the
// stock collection was first imported from, so they keep their spaces.
type Stock struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Brand           string             `bson:"Brand" json:"Brand"`
	Model           string             `bson:"Model" json:"Model"`
	Quantity        int                `bson:"Quantity" json:"Quantity"`
	PriceUSD        string             `bson:"Price (USD)" json:"Price (USD)"`
	Condition       string             `bson:"Condition" json:"Condition"`
	Description     string             `bson:"Description" json:"Description"`
	Detail          string             `bson:"Detail" json:"Detail"`
	ProductCategory string             `bson:"Product Category" json:"Product Category"`
	PartNumber      string             `bson:"Part Number" json:"Part Number"`
	SKU             string             `bson:"SKU" json:"SKU"`
	SerialNumber    string             `bson:"Serial Number" json:"Serial Number"`
	Location        string             `bson:"Location" json:"Location"`
	Status          string             `bson:"Status" json:"Status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

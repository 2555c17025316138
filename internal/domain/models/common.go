package models

// Image references an externally hosted picture.
type Image struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt" json:"alt"`
}

// Address is shared by users and cards.
type Address struct {
	State       string `bson:"state" json:"state"`
	Country     string `bson:"country" json:"country"`
	City        string `bson:"city" json:"city"`
	Street      string `bson:"street" json:"street"`
	HouseNumber int    `bson:"house_number" json:"houseNumber"`
	Zip         int    `bson:"zip,omitempty" json:"zip,omitempty"`
}

// Package formutil reads JSON request bodies into input structs, validates
// them, and converts the shared nested inputs into models.
//
// Example usage:
//
//	var in cardInput
//	if msg, ok := formutil.Bind(w, r, &in); !ok {
//		respond.Error(w, http.StatusBadRequest, msg)
//		return
//	}
package formutil

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/cardhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/cardhub/internal/app/system/inputval"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxBodyBytes caps request bodies read by Bind.
const MaxBodyBytes = 1 << 20

// Messages returned by Bind for body-level problems.
const (
	MsgEmptyBody   = "Request body is missing."
	MsgInvalidBody = "Invalid request body."
)

// Bind decodes the JSON body into dst and runs its validate tags. On
// failure it returns the message to show the client.
func Bind(w http.ResponseWriter, r *http.Request, dst any) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := respond.Decode(r, dst); err != nil {
		if errors.Is(err, io.EOF) {
			return MsgEmptyBody, false
		}
		return MsgInvalidBody, false
	}
	if res := inputval.Validate(dst); res.HasErrors() {
		return res.First(), false
	}
	return "", true
}

// ParseID reads the chi URL parameter name as an ObjectID.
func ParseID(r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// Text trims s and strips any markup from it.
func Text(s string) string {
	return htmlsanitize.Text(s)
}

// ImageInput is the image object accepted by users and cards.
type ImageInput struct {
	URL string `json:"url" validate:"omitempty,httpurl" label:"Image URL"`
	Alt string `json:"alt" validate:"max=255" label:"Image alt"`
}

func (in ImageInput) Model() models.Image {
	return models.Image{URL: strings.TrimSpace(in.URL), Alt: Text(in.Alt)}
}

// AddressInput is the address object accepted by users and cards.
type AddressInput struct {
	State       string `json:"state" validate:"max=255" label:"State"`
	Country     string `json:"country" validate:"required,min=2,max=255" label:"Country"`
	City        string `json:"city" validate:"required,min=2,max=255" label:"City"`
	Street      string `json:"street" validate:"required,min=2,max=255" label:"Street"`
	HouseNumber *int   `json:"houseNumber" validate:"required" label:"House number"`
	Zip         *int   `json:"zip" validate:"omitempty,min=0" label:"Zip"`
}

func (in AddressInput) Model() models.Address {
	a := models.Address{
		State:   Text(in.State),
		Country: Text(in.Country),
		City:    Text(in.City),
		Street:  Text(in.Street),
	}
	if in.HouseNumber != nil {
		a.HouseNumber = *in.HouseNumber
	}
	if in.Zip != nil {
		a.Zip = *in.Zip
	}
	return a
}

// internal/app/features/users/types.go
package users

import (
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/domain/models"
)

type nameInput struct {
	First  string `json:"first" validate:"required,min=2,max=255" label:"First name"`
	Middle string `json:"middle" validate:"max=255" label:"Middle name"`
	Last   string `json:"last" validate:"required,min=2,max=255" label:"Last name"`
}

func (in nameInput) Model() models.PersonName {
	return models.PersonName{
		First:  formutil.Text(in.First),
		Middle: formutil.Text(in.Middle),
		Last:   formutil.Text(in.Last),
	}
}

// profileInput is the part of a user a client may set. Register adds
// credentials to it.
type profileInput struct {
	Name    nameInput             `json:"name" validate:"required" label:"Name"`
	Phone   string                `json:"phone" validate:"required,phone" label:"Phone"`
	Image   formutil.ImageInput   `json:"image" label:"Image"`
	Address formutil.AddressInput `json:"address" validate:"required" label:"Address"`
}

type registerInput struct {
	profileInput
	Email          string `json:"email" validate:"required,email,max=254" label:"Email"`
	Password       string `json:"password" validate:"required,min=7,max=72" label:"Password"`
	IsRegisterUser bool   `json:"isRegisterUser"`
}

type registerUserInput struct {
	IsRegisterUser *bool `json:"isRegisterUser" validate:"required" label:"isRegisterUser"`
}

// internal/app/features/cards/types.go
package cards

import (
	"strings"

	cardstore "github.com/dalemusser/cardhub/internal/app/store/cards"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/domain/models"
)

const (
	msgInvalidID = "Invalid card id."
	msgNotFound  = "No cards found"
)

// cardInput holds the fields an owner sets on create and on update.
type cardInput struct {
	Title       string                `json:"title" validate:"required,min=2,max=255" label:"Title"`
	Subtitle    string                `json:"subtitle" validate:"required,min=2,max=255" label:"Subtitle"`
	Description string                `json:"description" validate:"required,min=2,max=1024" label:"Description"`
	Phone       string                `json:"phone" validate:"required,mobile" label:"Phone"`
	Email       string                `json:"email" validate:"required,email,max=254" label:"Email"`
	Web         string                `json:"web" validate:"omitempty,httpurl" label:"Web"`
	Image       formutil.ImageInput   `json:"image" label:"Image"`
	Address     formutil.AddressInput `json:"address" validate:"required" label:"Address"`
}

func (in cardInput) Update() cardstore.CardUpdate {
	return cardstore.CardUpdate{
		Title:       formutil.Text(in.Title),
		Subtitle:    formutil.Text(in.Subtitle),
		Description: formutil.Text(in.Description),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       in.Email,
		Web:         strings.TrimSpace(in.Web),
		Image:       in.Image.Model(),
		Address:     in.Address.Model(),
	}
}

// createInput lets the creator pick a business number; it is allocated
// when left out.
type createInput struct {
	cardInput
	BizNumber *int64 `json:"bizNumber" validate:"omitempty,min=1" label:"bizNumber"`
}

func (in createInput) Model() models.Card {
	u := in.Update()
	c := models.Card{
		Title:       u.Title,
		Subtitle:    u.Subtitle,
		Description: u.Description,
		Phone:       u.Phone,
		Email:       u.Email,
		Web:         u.Web,
		Image:       u.Image,
		Address:     u.Address,
	}
	if in.BizNumber != nil {
		c.BizNumber = *in.BizNumber
	}
	return c
}

type bizNumberInput struct {
	BizNumber int64 `json:"bizNumber" validate:"required,min=1" label:"bizNumber"`
}

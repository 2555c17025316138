package formutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sample struct {
	Name    string                `json:"name" validate:"required,min=2" label:"Name"`
	Address formutil.AddressInput `json:"address" validate:"required"`
}

func TestBind(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantMsg string
	}{
		{"valid", `{"name":"Ok","address":{"country":"IL","city":"Haifa","street":"Herzl","houseNumber":0}}`, true, ""},
		{"empty body", ``, false, formutil.MsgEmptyBody},
		{"malformed", `{"name":`, false, formutil.MsgInvalidBody},
		{"wrong type", `{"name":"Ok","address":{"houseNumber":"12"}}`, false, formutil.MsgInvalidBody},
		{"validation", `{"name":"O","address":{"country":"IL","city":"Haifa","street":"Herzl","houseNumber":1}}`, false, "Name must be at least 2 characters."},
		{"missing house number", `{"name":"Ok","address":{"country":"IL","city":"Haifa","street":"Herzl"}}`, false, "House number is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var in sample
			msg, ok := formutil.Bind(httptest.NewRecorder(), req, &in)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v (msg %q)", ok, tt.wantOK, msg)
			}
			if msg != tt.wantMsg {
				t.Errorf("msg: got %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.Hex())
	got, ok := formutil.ParseID(req, "id")
	if !ok || got != id {
		t.Errorf("ParseID: got %v %v, want %v true", got, ok, id)
	}

	req = testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "not-an-id")
	if _, ok := formutil.ParseID(req, "id"); ok {
		t.Error("expected ParseID to reject a malformed id")
	}
}

func TestAddressInput_Model(t *testing.T) {
	house, zip := 12, 3100
	in := formutil.AddressInput{
		Country:     " Israel ",
		City:        "<b>Haifa</b>",
		Street:      "Herzl",
		HouseNumber: &house,
		Zip:         &zip,
	}
	a := in.Model()
	if a.Country != "Israel" || a.City != "Haifa" {
		t.Errorf("not cleaned: %+v", a)
	}
	if a.HouseNumber != 12 || a.Zip != 3100 {
		t.Errorf("numbers: %+v", a)
	}
}

func TestImageInput_Model(t *testing.T) {
	img := formutil.ImageInput{URL: " https://example.com/a.png ", Alt: "logo"}.Model()
	if img.URL != "https://example.com/a.png" || img.Alt != "logo" {
		t.Errorf("got %+v", img)
	}
}

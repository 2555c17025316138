// internal/app/features/stocks/stocks.go
package stocks

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"github.com/dalemusser/cardhub/internal/domain/models"
)

const (
	msgInvalidID = "Invalid stock id."
	msgNotFound  = "Stock not found"
)

// stockInput mirrors the spreadsheet columns. Every field is optional.
type stockInput struct {
	Brand           string `json:"Brand" validate:"max=255" label:"Brand"`
	Model           string `json:"Model" validate:"max=255" label:"Model"`
	Quantity        int    `json:"Quantity" validate:"min=0" label:"Quantity"`
	PriceUSD        string `json:"Price (USD)" validate:"max=64" label:"Price (USD)"`
	Condition       string `json:"Condition" validate:"max=255" label:"Condition"`
	Description     string `json:"Description" validate:"max=2048" label:"Description"`
	Detail          string `json:"Detail" validate:"max=2048" label:"Detail"`
	ProductCategory string `json:"Product Category" validate:"max=255" label:"Product Category"`
	PartNumber      string `json:"Part Number" validate:"max=255" label:"Part Number"`
	SKU             string `json:"SKU" validate:"max=255" label:"SKU"`
	SerialNumber    string `json:"Serial Number" validate:"max=255" label:"Serial Number"`
	Location        string `json:"Location" validate:"max=255" label:"Location"`
	Status          string `json:"Status" validate:"max=255" label:"Status"`
}

func (in stockInput) toModel() models.Stock {
	return models.Stock{
		Brand:           formutil.Text(in.Brand),
		Model:           formutil.Text(in.Model),
		Quantity:        in.Quantity,
		PriceUSD:        formutil.Text(in.PriceUSD),
		Condition:       formutil.Text(in.Condition),
		Description:     formutil.Text(in.Description),
		Detail:          formutil.Text(in.Detail),
		ProductCategory: formutil.Text(in.ProductCategory),
		PartNumber:      formutil.Text(in.PartNumber),
		SKU:             formutil.Text(in.SKU),
		SerialNumber:    formutil.Text(in.SerialNumber),
		Location:        formutil.Text(in.Location),
		Status:          formutil.Text(in.Status),
	}
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request) (stockInput, bool) {
	var in stockInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		if msg == formutil.MsgEmptyBody {
			msg = "Stock details are missing"
		}
		respond.Error(w, http.StatusBadRequest, msg)
		return in, false
	}
	return in, true
}

// HandleCreate stores a stock line.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create stock")
	defer cancel()

	st, err := h.Stocks.Create(ctx, in.toModel())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error creating stock", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusCreated, st)
}

// ServeList returns every stock line, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list stock")
	defer cancel()

	list, err := h.Stocks.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing stock", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeStock returns one stock line.
func (h *Handler) ServeStock(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get stock")
	defer cancel()

	st, err := h.Stocks.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load stock", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

// HandleUpdate overwrites a stock line.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	in, ok := h.bind(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update stock")
	defer cancel()

	st, err := h.Stocks.Replace(ctx, id, in.toModel())
	if err != nil {
		h.ErrLog.LogError(w, r, "update stock", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

// HandleDelete removes a stock line.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete stock")
	defer cancel()

	n, err := h.Stocks.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error deleting stock", err, "A database error occurred.")
		return
	}
	if n == 0 {
		respond.Error(w, http.StatusNotFound, msgNotFound)
		return
	}
	respond.Message(w, "Stock deleted successfully")
}

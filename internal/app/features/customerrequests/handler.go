// internal/app/features/customerrequests/handler.go
package customerrequests

import (
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	customerrequeststore "github.com/dalemusser/cardhub/internal/app/store/customerrequests"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"github.com/dalemusser/cardhub/internal/domain/models"
	"go.uber.org/zap"
)

// ThankYou is the reply to a stored request.
const ThankYou = "Thank you for your request. Tinkertech representative will contact you soon"

// defaultListLimit caps the admin listing when ?limit is absent.
const defaultListLimit = 200

type Handler struct {
	Requests *customerrequeststore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(requests *customerrequeststore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Requests: requests, ErrLog: errLog, Log: logger}
}

type requestInput struct {
	Name    string `json:"name" validate:"required,max=255" label:"Name"`
	Email   string `json:"email" validate:"required,email,max=254" label:"Email"`
	Message string `json:"message" validate:"max=4096" label:"Message"`
}

// HandleCreate stores a contact request from the public site.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in requestInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create customer request")
	defer cancel()

	cr, err := h.Requests.Create(ctx, models.CustomerRequest{
		Name:    formutil.Text(in.Name),
		Email:   in.Email,
		Message: formutil.Text(in.Message),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error storing customer request", err, "A database error occurred.")
		return
	}

	h.Log.Info("customer request stored", zap.String("request_id", cr.ID.Hex()))
	respond.Message(w, ThankYou)
}

// ServeList returns stored requests, newest first. Admin only (see Routes).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultListLimit)
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			respond.Error(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list customer requests")
	defer cancel()

	list, err := h.Requests.List(ctx, limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing customer requests", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

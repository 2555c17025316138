// internal/app/features/logos/logos.go
package logos

import (
	"net/http"
	"strings"

	logostore "github.com/dalemusser/cardhub/internal/app/store/logos"
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"github.com/dalemusser/cardhub/internal/domain/models"
)

const (
	msgInvalidID = "Invalid logo id."
	msgNotFound  = "Logo not found"
)

type logoInput struct {
	Brand    string `json:"brand" validate:"required,min=2,max=255" label:"Brand"`
	LogoPath string `json:"logoPath" validate:"required,max=1024" label:"Logo path"`
	FileName string `json:"fileName" validate:"required,max=255" label:"File name"`
}

func (in logoInput) Update() logostore.LogoUpdate {
	return logostore.LogoUpdate{
		Brand:    formutil.Text(in.Brand),
		LogoPath: strings.TrimSpace(in.LogoPath),
		FileName: strings.TrimSpace(in.FileName),
	}
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request) (logoInput, bool) {
	var in logoInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		if msg == formutil.MsgEmptyBody {
			msg = "Logo details are missing"
		}
		respond.Error(w, http.StatusBadRequest, msg)
		return in, false
	}
	return in, true
}

// HandleCreate stores a logo owned by the caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}
	in, ok := h.bind(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create logo")
	defer cancel()

	u := in.Update()
	l, err := h.Logos.Create(ctx, models.Logo{
		Brand:    u.Brand,
		LogoPath: u.LogoPath,
		FileName: u.FileName,
		UserID:   p.ID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error creating logo", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusCreated, l)
}

// ServeList returns every logo ordered by brand.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list logos")
	defer cancel()

	list, err := h.Logos.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing logos", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeLogo returns one logo.
func (h *Handler) ServeLogo(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get logo")
	defer cancel()

	l, err := h.Logos.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load logo", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, l)
}

// HandleUpdate replaces a logo's fields. Owner only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	p, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update logo")
	defer cancel()

	l, err := h.Logos.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load logo for update", err, msgNotFound)
		return
	}
	if p == nil || l.UserID != p.ID {
		h.ErrLog.LogForbidden(w, r, "logo update refused", "Only logo owner can update the logo")
		return
	}

	in, ok := h.bind(w, r)
	if !ok {
		return
	}
	updated, err := h.Logos.Update(ctx, id, in.Update())
	if err != nil {
		h.ErrLog.LogError(w, r, "update logo", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleDelete removes a logo. Owner or admin.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	p, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete logo")
	defer cancel()

	l, err := h.Logos.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load logo for delete", err, msgNotFound)
		return
	}
	if p == nil || !(p.IsAdmin || l.UserID == p.ID) {
		h.ErrLog.LogForbidden(w, r, "logo delete refused", "Unauthorized to delete this logo")
		return
	}

	n, err := h.Logos.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error deleting logo", err, "A database error occurred.")
		return
	}
	if n == 0 {
		respond.Error(w, http.StatusNotFound, msgNotFound)
		return
	}
	respond.Message(w, "Logo deleted successfully")
}

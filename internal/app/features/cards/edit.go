// internal/app/features/cards/edit.go
package cards

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
)

// HandleUpdate replaces a card's editable fields. Owner only. The business
// number is not editable here; see HandleReassignBizNumber.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	p, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update card")
	defer cancel()

	c, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load card for update", err, msgNotFound)
		return
	}
	if p == nil || c.UserID != p.ID {
		h.ErrLog.LogForbidden(w, r, "card update refused", "Only card owner can change card data")
		return
	}

	var in cardInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.Cards.Update(ctx, id, in.Update())
	if err != nil {
		h.ErrLog.LogError(w, r, "update card", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleToggleLike adds the caller to the card's likes, or removes them
// when already there.
func (h *Handler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	p, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "toggle like")
	defer cancel()

	c, err := h.Cards.ToggleLike(ctx, id, p.ID)
	if err != nil {
		h.ErrLog.LogError(w, r, "toggle like", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

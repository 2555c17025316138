// internal/app/features/cards/list.go
package cards

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
)

// ServeList returns every card, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list cards")
	defer cancel()

	list, err := h.Cards.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing cards", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeMyCards returns the caller's cards.
func (h *Handler) ServeMyCards(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list my cards")
	defer cancel()

	list, err := h.Cards.ListByUser(ctx, p.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing user cards", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeCard returns one card.
func (h *Handler) ServeCard(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get card")
	defer cancel()

	c, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load card", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

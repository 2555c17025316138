// internal/app/features/cards/delete.go
package cards

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
)

// HandleDelete removes a card. Owner or admin.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	p, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete card")
	defer cancel()

	c, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load card for delete", err, msgNotFound)
		return
	}
	if p == nil || !(p.IsAdmin || c.UserID == p.ID) {
		h.ErrLog.LogForbidden(w, r, "card delete refused",
			"Unauthorized request - only the card owner or an admin can delete a card")
		return
	}

	deleted, err := h.Cards.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "delete card", err, msgNotFound)
		return
	}

	h.AuditLog.CardDeleted(r, p.ID, deleted.ID, deleted.UserID, p.IsAdmin)
	respond.JSON(w, http.StatusOK, deleted)
}

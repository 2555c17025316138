// internal/app/features/users/delete.go
package users

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes an account and the cards it owns. Users may delete
// themselves; admins may delete anyone.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	p, ok := auth.CurrentUser(r)
	if !ok || !(p.IsAdmin || p.ID == id) {
		h.ErrLog.LogForbidden(w, r, "user delete refused",
			"Unauthorized request - only a user can delete their own account, or an admin can delete any account")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete user")
	defer cancel()

	u, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "delete user", err, "User doesn't exist")
		return
	}

	if h.Cards != nil {
		n, err := h.Cards.DeleteByUser(ctx, id)
		if err != nil {
			// The account is already gone; report the orphaned cards and carry on.
			h.Log.Error("delete cards of deleted user", zap.String("user_id", id.Hex()), zap.Error(err))
		} else if n > 0 {
			h.Log.Info("deleted cards of deleted user", zap.String("user_id", id.Hex()), zap.Int64("count", n))
		}
	}

	h.AuditLog.UserDeleted(r, p.ID, id, p.IsAdmin)
	respond.JSON(w, http.StatusOK, u)
}

// internal/app/features/users/view.go
package users

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
)

const (
	msgInvalidID = "Invalid user id."
	msgNotFound  = "No such user"
)

// ServeUser returns one user's public profile.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load user", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

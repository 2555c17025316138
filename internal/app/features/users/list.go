// internal/app/features/users/list.go
package users

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
)

// ServeList returns every user, newest first. Admin only (see Routes).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	list, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing users", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all audit log routes under the path where this
// router is mounted (typically "/api/audit" from bootstrap).
//
// Access is restricted to admins.
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireSignedIn)
		pr.Use(auth.RequireAdmin)

		pr.Get("/", h.ServeList)
	})

	return r
}

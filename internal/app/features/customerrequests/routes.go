// internal/app/features/customerrequests/routes.go
package customerrequests

import (
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the contact form (typically at "/api/customerrequest").
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireSignedIn)
		pr.Use(auth.RequireAdmin)
		pr.Get("/", h.ServeList)
	})

	return r
}

// internal/app/features/logos/routes.go
package logos

import (
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts logo routes (typically at "/api/logos").
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeLogo)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

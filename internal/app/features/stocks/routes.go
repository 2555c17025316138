// internal/app/features/stocks/routes.go
package stocks

import (
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts stock routes (typically at "/api/stocks"). Reads are public;
// writes need a signed-in caller.
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeStock)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

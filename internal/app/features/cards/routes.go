// internal/app/features/cards/routes.go
package cards

import (
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts card routes under the path where this router is mounted
// (typically "/api/cards" from bootstrap).
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireSignedIn)

		pr.Get("/my-cards", h.ServeMyCards)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Patch("/{id}", h.HandleToggleLike)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Patch("/bizNumber/{id}", h.HandleReassignBizNumber)
	})

	r.Get("/{id}", h.ServeCard)

	return r
}

// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts user routes under the path where this router is mounted
// (typically "/api/users" from bootstrap, next to the login router).
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleRegister)
	r.Get("/{id}", h.ServeUser)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireSignedIn)

		pr.With(auth.RequireAdmin).Get("/", h.ServeList)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Patch("/{id}", h.HandleSetRegisterUser)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

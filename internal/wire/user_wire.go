package wire

import (
	"sigac-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures user management routes, admin only.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	r.With(g.auth, g.admin).Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers) // GET /api/users?page=1&per_page=10&role=CLIENT
		r.Post("/", userHandler.CreateUser)
		r.Get("/{cpf}", userHandler.GetUser)
		r.Put("/{cpf}", userHandler.UpdateUser)
		r.Delete("/{cpf}", userHandler.DeleteUser)
	})
}

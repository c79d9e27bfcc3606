package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cardholder-api/internal/api/shared"
)

// RegisterRoutes mounts the user and card endpoints on r.
// Unmatched paths and methods get the standard JSON error body.
func RegisterRoutes(r chi.Router, users *UserHandler, cards *CardHandler) {
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", users.ListUsers)
		r.Post("/", users.CreateUser)
		r.Get("/email/{email}", users.GetUserByEmail)
		r.Get("/{id}", users.GetUser)
		r.Put("/{id}", users.UpdateUser)
		r.Delete("/{id}", users.DeleteUser)
		r.Patch("/{id}/activate", users.ActivateUser)
		r.Patch("/{id}/deactivate", users.DeactivateUser)
	})

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", cards.ListCards)
		r.Post("/", cards.CreateCard)
		r.Get("/user/{userId}", cards.GetUserCards)
		r.Get("/{id}", cards.GetCard)
		r.Put("/{id}", cards.UpdateCard)
		r.Delete("/{id}", cards.DeleteCard)
		r.Patch("/{id}/activate", cards.ActivateCard)
		r.Patch("/{id}/deactivate", cards.DeactivateCard)
	})
}

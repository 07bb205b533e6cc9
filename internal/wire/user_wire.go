package wire

import (
	"net/http"

	"teach-trade/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser registers profile routes. /me and /profile are registered before
// /{id} so they are not captured as IDs.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Get("/api/users/me", userHandler.GetMe)
	r.With(auth).Put("/api/users/profile", userHandler.UpdateProfile)

	// Public profile
	r.Get("/api/users/{id}", userHandler.GetUserByID)
}

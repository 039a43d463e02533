package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter sets up all the application's routes and middleware.
func NewRouter(
	logger zerolog.Logger,
	auth *AuthMiddleware,
	userHandler *UserHandler,
	itemHandler *ItemHandler,
	shareHandler *ShareHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	// Health check.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API is running.\n"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Post("/auth/register", userHandler.Register)
		r.Post("/auth/login", userHandler.Login)

		// Routes requiring authentication.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", itemHandler.ListItems)
				r.Post("/folders", itemHandler.CreateFolder)
				r.Post("/upload", itemHandler.UploadFile)
				r.Post("/bulk", itemHandler.Bulk)
				r.Get("/{id}/download", itemHandler.DownloadFile)
				r.Get("/{id}/breadcrumbs", itemHandler.Breadcrumbs)
				r.Patch("/{id}/rename", itemHandler.Rename)
				r.Patch("/{id}/move", itemHandler.Move)
				r.Patch("/{id}/star", itemHandler.ToggleStar)
				r.Patch("/{id}/trash", itemHandler.Trash)
				r.Patch("/{id}/restore", itemHandler.Restore)
				r.Delete("/{id}", itemHandler.PermanentlyDelete)
			})

			r.Route("/shares", func(r chi.Router) {
				r.Get("/shared-with-me", shareHandler.SharedWithMe)
				r.Post("/{id}", shareHandler.Share)
				r.Get("/{id}", shareHandler.ListGrants)
				r.Patch("/{id}/{granteeId}", shareHandler.UpdatePermission)
				r.Delete("/{id}/{granteeId}", shareHandler.Unshare)
			})
		})
	})

	return r
}

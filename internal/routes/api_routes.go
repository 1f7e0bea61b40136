package routes

import (
	"design-studio/backend/internal/api"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers everything under /api
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers) {
	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Get("/", handlers.Root())
		apiRouter.Get("/health", handlers.HealthCheck())

		apiRouter.Post("/status", handlers.CreateStatusCheck())
		apiRouter.Get("/status", handlers.ListStatusChecks())

		apiRouter.Route("/klippy", func(klippy chi.Router) {
			klippy.Get("/elements", handlers.ListElements())
			klippy.Get("/search", handlers.SearchElements())
		})

		apiRouter.Post("/folder/create", handlers.CreateFolder())

		apiRouter.Route("/organization/{orgName}", func(org chi.Router) {
			org.Get("/check", handlers.CheckOrganization())
			org.Post("/create", handlers.CreateOrganization())
			org.Get("/images", handlers.ListOrganizationImages())
			org.Post("/upload", handlers.UploadOrganizationImage())

			// image ids are public ids and may span several path segments
			org.Get("/image/*", handlers.GetImage())
			org.Delete("/image/*", handlers.DeleteImage())
		})
	})
}

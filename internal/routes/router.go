package routes

import (
	"net/http"

	"design-studio/backend/internal/api"
	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/metrics"
	"design-studio/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions carries what the router needs besides the API dependencies
type RouterOptions struct {
	AllowedOrigins []string
	Metrics        *metrics.MetricsRegistry
	Gatherer       prometheus.Gatherer
}

func RegisterRoutes(deps *api.Dependencies, opts RouterOptions) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Logging)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}
	r.Use(chimiddleware.Recoverer)

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized", "allowed_origins", allowedOrigins)

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	handlers := api.NewHandlers(deps)
	RegisterAPIRoutes(r, handlers)

	return r
}

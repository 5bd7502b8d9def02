// Package router sets up all HTTP routes and middleware chains for the
// generator API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sitesmith/internal/handlers"
	"sitesmith/internal/middleware"
)

// Options configures the cross-cutting middleware.
type Options struct {
	// CORSOrigins lists the browser origins allowed to call the API and
	// to frame generated sites. "*" allows any origin.
	CORSOrigins []string
	// Limiter guards the endpoints that call a model. Nil disables it.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(opts.CORSOrigins...))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/", api.Root)
	r.Get("/test", api.Test)
	r.Get("/health", api.Health)
	r.Get("/color-schemes", api.ColorSchemes)
	r.Get("/templates", api.Templates)

	// Streaming stays outside the rate limiter; clients reconnect freely.
	r.Get("/generate-sse", api.GenerateSSE)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}
		r.Post("/start-generation", api.StartGeneration)
		r.Post("/chat", api.Chat)
		r.Get("/chat", api.Chat)
	})

	r.Get("/generations", api.Generations)
	r.Get("/generations/{id}", api.Generation)

	r.Route("/sites/{id}", func(r chi.Router) {
		r.Get("/", api.Site)
		r.Delete("/", api.DeleteSite)
		r.Post("/publish", api.PublishSite)
	})

	return r
}

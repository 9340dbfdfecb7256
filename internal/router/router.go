// Package router sets up all HTTP routes and middleware chains for the
// Inkpress API. Routes are organized into public read endpoints and
// token-protected write endpoints.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(jwtSecret []byte, auth *handlers.Auth, posts *handlers.Posts, categories *handlers.Categories) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.Authenticator(jwtSecret))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Auth endpoints — rate limited to slow down credential stuffing.
	r.Route("/api/auth", func(r chi.Router) {
		limiter := middleware.NewRateLimiter(10, 1*time.Minute)
		r.Use(limiter.Middleware)

		r.Post("/login", auth.Login)
		r.Post("/register", auth.Register)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
		})
	})

	// Categories — open CRUD.
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categories.List)
		r.Post("/", categories.Create)
		r.Get("/slug/{slug}", categories.GetBySlug)
		r.Get("/{id}", categories.GetByID)
		r.Put("/{id}", categories.Update)
		r.Delete("/{id}", categories.Delete)
	})

	// Posts — public reads, token-protected writes.
	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Get("/tags", posts.Tags)
		r.Get("/slug/{slug}", posts.GetBySlug)
		r.Get("/{id}", posts.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/my", posts.My)
			r.Post("/", posts.Create)
			r.Put("/{id}", posts.Update)
			r.Delete("/{id}", posts.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

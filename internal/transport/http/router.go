package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"devconnect/internal/handler"
	"devconnect/internal/httputil"
	authmw "devconnect/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	PostHandler    *handler.PostHandler
	JWTSecret      string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Post("/api/users", cfg.AuthHandler.Register)
	r.Post("/api/auth", cfg.AuthHandler.Login)
	r.Get("/api/profile", cfg.ProfileHandler.List)
	r.Get("/api/profile/user/{user_id}", cfg.ProfileHandler.GetByUser)
	r.Get("/api/profile/github/{username}", cfg.ProfileHandler.GithubRepos)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/api/auth", cfg.AuthHandler.Me)

		r.Get("/api/profile/me", cfg.ProfileHandler.Me)
		r.Post("/api/profile", cfg.ProfileHandler.Upsert)
		r.Delete("/api/profile", cfg.ProfileHandler.DeleteAccount)
		r.Put("/api/profile/experience", cfg.ProfileHandler.AddExperience)
		r.Delete("/api/profile/experience/{entry_id}", cfg.ProfileHandler.RemoveExperience)
		r.Put("/api/profile/education", cfg.ProfileHandler.AddEducation)
		r.Delete("/api/profile/education/{entry_id}", cfg.ProfileHandler.RemoveEducation)

		r.Get("/api/posts", cfg.PostHandler.List)
		r.Post("/api/posts", cfg.PostHandler.Create)
		r.Get("/api/posts/{id}", cfg.PostHandler.GetByID)
		r.Delete("/api/posts/{id}", cfg.PostHandler.Delete)
		r.Put("/api/posts/{id}/like", cfg.PostHandler.ToggleLike)
		r.Post("/api/posts/{id}/comments", cfg.PostHandler.AddComment)
		r.Delete("/api/posts/{id}/comments/{comment_id}", cfg.PostHandler.RemoveComment)
	})

	return r
}

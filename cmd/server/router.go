package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tomhaskel/profiled/internal/api"
	apiMiddleware "github.com/tomhaskel/profiled/internal/api/middleware"
	"github.com/tomhaskel/profiled/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.accountStore, app.tokenService, app.passwordVerifier)
	profileHandler := api.NewProfileHandler(app.profileStore, app.config.Upload)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	// Account endpoints
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/me", authHandler.Me)
	})

	// Profile endpoints
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", profileHandler.Create)
		r.Get("/", profileHandler.List)
		r.Get("/search", profileHandler.Search)
		r.Post("/bulk", profileHandler.BulkCreate)
		r.Get("/{id}", profileHandler.GetByID)
		r.Get("/{id}/image", profileHandler.GetImage)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, "OK", nil)
	})

	// Unknown routes get the same envelope as every other response.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "route not found")
	})

	return r
}

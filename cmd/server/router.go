package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ruslex/ruslex-api/internal/api"
	apiMiddleware "github.com/ruslex/ruslex-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordHasher)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	verbHandler := api.NewVerbHandler(app.verbService)
	nounHandler := api.NewNounHandler(app.nounService)
	verbGroupHandler := api.NewVerbGroupHandler(app.verbGroupService)
	nounGroupHandler := api.NewNounGroupHandler(app.nounGroupService)
	studentHandler := api.NewStudentHandler(app.studentService)
	userHandler := api.NewUserHandler(app.userService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account endpoints
			r.Get("/users/me", userHandler.Me)
			r.Put("/users/me", userHandler.UpdateMe)
			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Delete("/users/{id}", userHandler.Delete)

			// Verb lexicon endpoints
			r.Get("/verbs", verbHandler.List)
			r.Post("/verbs", verbHandler.Create)
			r.Get("/verbs/pair/{pairID}", verbHandler.GetByPair)
			r.Get("/verbs/{id}", verbHandler.Get)
			r.Put("/verbs/{id}", verbHandler.Update)
			r.Delete("/verbs/{id}", verbHandler.Delete)
			r.Get("/verbs/{id}/conjugations", verbHandler.Conjugations)

			// Noun lexicon endpoints
			r.Get("/nouns", nounHandler.List)
			r.Post("/nouns", nounHandler.Create)
			r.Get("/nouns/{id}", nounHandler.Get)
			r.Put("/nouns/{id}", nounHandler.Update)
			r.Delete("/nouns/{id}", nounHandler.Delete)
			r.Get("/nouns/{id}/declension", nounHandler.Declension)

			// Verb study group endpoints
			r.Get("/verb-groups", verbGroupHandler.List)
			r.Post("/verb-groups", verbGroupHandler.Create)
			r.Get("/verb-groups/{id}", verbGroupHandler.Get)
			r.Put("/verb-groups/{id}", verbGroupHandler.Update)
			r.Delete("/verb-groups/{id}", verbGroupHandler.Delete)
			r.Post("/verb-groups/{id}/verbs/{verbID}", verbGroupHandler.AddVerb)
			r.Delete("/verb-groups/{id}/verbs/{verbID}", verbGroupHandler.RemoveVerb)

			// Noun study group endpoints
			r.Get("/noun-groups", nounGroupHandler.List)
			r.Post("/noun-groups", nounGroupHandler.Create)
			r.Get("/noun-groups/{id}", nounGroupHandler.Get)
			r.Put("/noun-groups/{id}", nounGroupHandler.Update)
			r.Delete("/noun-groups/{id}", nounGroupHandler.Delete)
			r.Post("/noun-groups/{id}/nouns/{nounID}", nounGroupHandler.AddNoun)
			r.Delete("/noun-groups/{id}/nouns/{nounID}", nounGroupHandler.RemoveNoun)

			// Student roster endpoints
			r.Get("/students", studentHandler.List)
			r.Post("/students/{id}/link", studentHandler.Link)
			r.Delete("/students/{id}/unlink", studentHandler.Unlink)
			r.Get("/students/{id}/progress", studentHandler.Progress)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

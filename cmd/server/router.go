package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/twitter-persistence/internal/api"
	apiMiddleware "github.com/phrazzld/twitter-persistence/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	userHandler := api.NewUserHandler(app.users, app.logger)
	accountHandler := api.NewAccountHandler(app.accounts, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Data Mapper
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Delete("/", userHandler.TruncateUsers)
			r.Put("/{"+api.UsernameParam+"}", userHandler.PersistUser)
			r.Get("/{"+api.UsernameParam+"}", userHandler.GetUser)
			r.Post("/{"+api.UsernameParam+"}/tweets", userHandler.PostTweet)
		})

		// Active Record
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.ListAccounts)
			r.Post("/", accountHandler.CreateAccount)
			r.Delete("/", accountHandler.TruncateAccounts)
			r.Get("/{"+api.UsernameParam+"}", accountHandler.GetAccount)
		})
	})

	r.Get("/health", app.handleHealth)

	return r
}

// handleHealth reports whether the storage backend is reachable.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := app.stores.Ping(r.Context()); err != nil {
		app.logger.Error("Health check failed", "error", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}

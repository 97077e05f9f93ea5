// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// Daily Games Hub API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dailygameshub/internal/handlers"
	"dailygameshub/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Catalog      *handlers.Catalog
	Interactions *handlers.Interactions
	Suggestions  *handlers.Suggestions
	Webhook      *handlers.Webhook
	Admin        *handlers.Admin
	AdminAuth    *middleware.APIKeyAuth
	// IntakeLimiter throttles the routes that create GitHub issues.
	IntakeLimiter *middleware.RateLimiter
}

// New creates the chi router with global middleware and every route.
func New(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(jsonStatus(http.StatusNotFound, "Not found"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "Method not allowed"))

	r.Get("/health", healthHandler)

	// The webhook is registered at both paths GitHub has been configured with.
	for _, path := range []string{"/api/github-webhook", "/webhook"} {
		r.Get(path, h.Webhook.Status)
		r.Post(path, h.Webhook.Receive)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.Catalog.Games)
		r.Get("/games/{id}", h.Catalog.Game)
		r.Get("/categories", h.Catalog.Categories)
		r.Get("/category-counts", h.Catalog.CategoryCounts)
		r.Post("/favorites", h.Catalog.Favorites)
		r.Post("/track-interaction", h.Interactions.Track)
		r.Post("/check-game-exists", h.Suggestions.CheckExists)

		r.Group(func(r chi.Router) {
			r.Use(h.IntakeLimiter.Middleware)
			r.Post("/suggest-game", h.Suggestions.Suggest)
			r.Post("/report-issue", h.Suggestions.Report)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(h.AdminAuth.Require)
			r.Get("/pending-games", h.Admin.PendingGames)
			r.Delete("/games/{id}", h.Admin.DeleteGame)
			r.Get("/test-email", h.Admin.TestEmail)
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

func jsonStatus(status int, message string) http.HandlerFunc {
	body := `{"error":"` + message + `"}`
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

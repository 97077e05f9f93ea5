// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dailygameshub/internal/apperr"
	"dailygameshub/internal/email"
	"dailygameshub/internal/models"
)

// PendingLister lists suggestions awaiting moderation.
type PendingLister interface {
	List(ctx context.Context) ([]models.PendingSuggestion, error)
}

// GameRemover deletes catalog games.
type GameRemover interface {
	Delete(ctx context.Context, id string) (string, error)
}

// CountDecrementer lowers a category count.
type CountDecrementer interface {
	Decrement(ctx context.Context, category string) error
}

// CacheInvalidator drops cached catalog responses.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// TestMailer sends notification emails.
type TestMailer interface {
	IsConfigured() bool
	Notify(ctx context.Context, to, gameName string, status email.Status, comment string) error
}

// Admin serves the API-key protected routes.
type Admin struct {
	pending PendingLister
	games   GameRemover
	counts  CountDecrementer
	cache   CacheInvalidator
	mailer  TestMailer
}

// NewAdmin creates an Admin handler group.
func NewAdmin(pending PendingLister, games GameRemover, counts CountDecrementer, c CacheInvalidator, mailer TestMailer) *Admin {
	if c == nil {
		c = noCache{}
	}
	return &Admin{pending: pending, games: games, counts: counts, cache: c, mailer: mailer}
}

// PendingGames lists every pending suggestion, newest first.
func (a *Admin) PendingGames(w http.ResponseWriter, r *http.Request) {
	pending, err := a.pending.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch pending games")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pendingGames": pending})
}

// DeleteGame removes a game from the catalog and lowers its category count.
func (a *Admin) DeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	category, err := a.games.Delete(ctx, id)
	if err != nil {
		writeError(w, r, err, "Failed to delete game")
		return
	}
	if category == "" {
		writeError(w, r, apperr.NotFound("Game not found"), "")
		return
	}
	a.cache.InvalidateAll(ctx)
	if err := a.counts.Decrement(ctx, category); err != nil {
		writeError(w, r, err, "Failed to update category counts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// TestEmail sends a sample "added" notification to ?email.
func (a *Admin) TestEmail(w http.ResponseWriter, r *http.Request) {
	to := strings.TrimSpace(r.URL.Query().Get("email"))
	if to == "" {
		writeError(w, r, apperr.Validation("Email parameter is required"), "")
		return
	}
	if !a.mailer.IsConfigured() {
		writeError(w, r, apperr.Configuration("Email is not configured"), "")
		return
	}
	if err := a.mailer.Notify(r.Context(), to, "Test Game", email.StatusAdded, ""); err != nil {
		writeError(w, r, apperr.Upstream("Failed to send test email", err), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Test email sent to " + to})
}

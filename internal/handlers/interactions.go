// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"dailygameshub/internal/apperr"
	"dailygameshub/internal/models"
)

// InteractionTracker records visitor interactions.
type InteractionTracker interface {
	TrackInteraction(ctx context.Context, gameID string, t models.InteractionType) (*models.GameStats, error)
}

// Interactions serves the tracking endpoint.
type Interactions struct {
	stats InteractionTracker
	cache CacheInvalidator
}

// NewInteractions creates an Interactions handler. Cached catalog responses
// are dropped whenever an interaction changes a game's popularity.
func NewInteractions(stats InteractionTracker, c CacheInvalidator) *Interactions {
	if c == nil {
		c = noCache{}
	}
	return &Interactions{stats: stats, cache: c}
}

// Track records a click, favorite or unfavorite for a game.
func (h *Interactions) Track(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID string                 `json:"gameId"`
		Type   models.InteractionType `json:"type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if req.GameID == "" || req.Type == "" {
		writeError(w, r, apperr.Validation("Missing gameId or type"), "")
		return
	}
	if !req.Type.Valid() {
		writeError(w, r, apperr.Validation("Invalid interaction type"), "")
		return
	}

	stats, err := h.stats.TrackInteraction(r.Context(), req.GameID, req.Type)
	if err != nil {
		writeError(w, r, err, "Failed to track interaction")
		return
	}
	if stats.PopularityChanged {
		h.cache.InvalidateAll(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

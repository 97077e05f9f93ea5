// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: catalog reads, interaction
// tracking, suggestion intake, the moderation webhook and admin routes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"dailygameshub/internal/apperr"
)

// maxBodyBytes caps request bodies. Webhook payloads use maxWebhookBytes.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps err to a JSON error response. Classified errors keep their
// own status and message; anything else is logged and answered with a 500
// carrying fallback.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if e, ok := apperr.As(err); ok {
		if e.Status() >= http.StatusInternalServerError {
			slog.Error(e.Message, "method", r.Method, "path", r.URL.Path, "error", err)
		}
		writeJSON(w, e.Status(), errorBody{Error: e.Message})
		return
	}
	slog.Error(fallback, "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: fallback})
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("Request body too large")
		}
		return apperr.Validation("Invalid JSON body")
	}
	return nil
}

// noCache stands in when no response cache is configured.
type noCache struct{}

func (noCache) Get(context.Context, string, any) bool { return false }
func (noCache) Set(context.Context, string, any) {}
func (noCache) InvalidateAll(context.Context) {}

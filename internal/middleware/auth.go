// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyAuth guards admin routes with a static bearer key. Only the bcrypt
// hash of the key is kept in memory.
type APIKeyAuth struct {
	hash []byte
}

// NewAPIKeyAuth hashes key. An empty key produces a guard that rejects every
// request.
func NewAPIKeyAuth(key string) (*APIKeyAuth, error) {
	if key == "" {
		slog.Warn("admin api key not configured, admin routes are disabled")
		return &APIKeyAuth{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin api key: %w", err)
	}
	return &APIKeyAuth{hash: hash}, nil
}

// Require rejects requests without an "Authorization: Bearer <key>" header
// matching the configured key.
func (a *APIKeyAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if len(a.hash) == 0 || bcrypt.CompareHashAndPassword(a.hash, []byte(token)) != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

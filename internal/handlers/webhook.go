// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"dailygameshub/internal/apperr"
	"dailygameshub/internal/moderation"
)

// maxWebhookBytes matches the largest payload GitHub delivers.
const maxWebhookBytes = 25 << 20

// IssueProcessor applies the outcome of a closed suggestion issue.
type IssueProcessor interface {
	Process(ctx context.Context, is *moderation.Issue) (*moderation.Outcome, error)
}

// Webhook receives GitHub issue events.
type Webhook struct {
	secret []byte
	proc   IssueProcessor
}

// NewWebhook creates a Webhook handler. An empty secret rejects every
// delivery.
func NewWebhook(secret string, proc IssueProcessor) *Webhook {
	return &Webhook{secret: []byte(secret), proc: proc}
}

// Status answers GET requests to the webhook URL.
func (h *Webhook) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "GitHub webhook endpoint is active"})
}

// Receive verifies and processes one delivery.
func (h *Webhook) Receive(w http.ResponseWriter, r *http.Request) {
	if len(h.secret) == 0 {
		writeError(w, r, apperr.Configuration("Webhook secret not configured"), "")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		writeError(w, r, apperr.Validation("Invalid payload"), "")
		return
	}

	if err := moderation.VerifySignature(r.Header.Get("X-Hub-Signature-256"), payload, h.secret); err != nil {
		slog.Warn("webhook signature rejected", "delivery", r.Header.Get("X-GitHub-Delivery"), "error", err)
		writeError(w, r, apperr.Unauthorized("Invalid signature"), "")
		return
	}

	issue, message, err := moderation.Decode(r.Header.Get("X-GitHub-Event"), payload)
	if err != nil {
		writeError(w, r, apperr.Validation("Invalid payload"), "")
		return
	}
	if issue == nil {
		slog.Debug("webhook acknowledged", "event", r.Header.Get("X-GitHub-Event"), "message", message)
		writeJSON(w, http.StatusOK, map[string]string{"message": message})
		return
	}

	slog.Info("processing closed suggestion", "issue", issue.Number, "reason", issue.StateReason)
	out, err := h.proc.Process(r.Context(), issue)
	if err != nil {
		writeError(w, r, err, "Failed to process webhook")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

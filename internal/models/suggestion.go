// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SuggestionStatus is the moderation state of a pending suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// PendingSuggestion tracks a submitted game against the GitHub issue that
// moderates it. It moves from pending to approved or rejected once, when the
// issue is closed, and is deleted after the closure is processed.
type PendingSuggestion struct {
	ID           uuid.UUID        `json:"id"`
	IssueNumber  int              `json:"issueNumber"`
	GameData     Game             `json:"gameData"`
	ContactEmail *string          `json:"contactEmail,omitempty"`
	Status       SuggestionStatus `json:"status"`
	Comment      *string          `json:"comment,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	ProcessedAt  *time.Time       `json:"processedAt,omitempty"`
}

// IsProcessed returns true once the suggestion has left the pending state.
func (p *PendingSuggestion) IsProcessed() bool {
	return p.Status != SuggestionPending
}

// ContactEmail is the legacy per-issue notifier address, stored apart from
// the pending suggestion.
type ContactEmail struct {
	ID          uuid.UUID `json:"id"`
	IssueNumber int       `json:"issueNumber"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

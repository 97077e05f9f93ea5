// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dailygameshub/internal/models"
)

// ContactStore manages per-issue notifier addresses.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Create stores an address for issueNumber.
func (s *ContactStore) Create(ctx context.Context, issueNumber int, email string) (*models.ContactEmail, error) {
	var c models.ContactEmail
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO contacts (issue_number, email)
		VALUES ($1, $2)
		RETURNING id, issue_number, email, created_at
	`, issueNumber, email).Scan(&c.ID, &c.IssueNumber, &c.Email, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &c, nil
}

// Latest returns the most recently stored address for issueNumber.
// Returns nil, nil if none exists.
func (s *ContactStore) Latest(ctx context.Context, issueNumber int) (*models.ContactEmail, error) {
	var c models.ContactEmail
	err := s.db.QueryRowContext(ctx, `
		SELECT id, issue_number, email, created_at
		FROM contacts
		WHERE issue_number = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, issueNumber).Scan(&c.ID, &c.IssueNumber, &c.Email, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest contact: %w", err)
	}
	return &c, nil
}

// DeleteByIssue removes every address stored for issueNumber.
func (s *ContactStore) DeleteByIssue(ctx context.Context, issueNumber int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE issue_number = $1`, issueNumber)
	if err != nil {
		return 0, fmt.Errorf("delete contacts by issue: %w", err)
	}
	return res.RowsAffected()
}

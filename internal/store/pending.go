// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dailygameshub/internal/models"
)

// PendingStore manages suggestions awaiting moderation.
type PendingStore struct {
	db *sql.DB
}

// NewPendingStore returns a new PendingStore.
func NewPendingStore(db *sql.DB) *PendingStore {
	return &PendingStore{db: db}
}

const pendingColumns = `id, issue_number, game_data, contact_email, status, comment, created_at, processed_at`

// scanPending scans a row into a PendingSuggestion, decoding the JSONB
// game_data column.
func scanPending(scanner interface{ Scan(...any) error }) (*models.PendingSuggestion, error) {
	var (
		p        models.PendingSuggestion
		gameData []byte
	)
	err := scanner.Scan(
		&p.ID, &p.IssueNumber, &gameData, &p.ContactEmail,
		&p.Status, &p.Comment, &p.CreatedAt, &p.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(gameData, &p.GameData); err != nil {
		return nil, fmt.Errorf("decode game_data: %w", err)
	}
	if p.GameData.Tags == nil {
		p.GameData.Tags = []string{}
	}
	return &p, nil
}

// Create inserts a pending suggestion and returns the stored row. Status
// defaults to pending when unset.
func (s *PendingStore) Create(ctx context.Context, p *models.PendingSuggestion) (*models.PendingSuggestion, error) {
	gameData, err := json.Marshal(p.GameData)
	if err != nil {
		return nil, fmt.Errorf("encode game_data: %w", err)
	}
	status := p.Status
	if status == "" {
		status = models.SuggestionPending
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO pending_games (issue_number, game_data, contact_email, status)
		VALUES ($1, $2::jsonb, $3, $4)
		RETURNING `+pendingColumns,
		p.IssueNumber, string(gameData), p.ContactEmail, status,
	)
	result, err := scanPending(row)
	if err != nil {
		return nil, fmt.Errorf("create pending suggestion: %w", err)
	}
	return result, nil
}

// FindByIssue retrieves the suggestion tracked by an issue number.
// Returns nil, nil if not found.
func (s *PendingStore) FindByIssue(ctx context.Context, issueNumber int) (*models.PendingSuggestion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+pendingColumns+` FROM pending_games WHERE issue_number = $1`, issueNumber)
	p, err := scanPending(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pending by issue: %w", err)
	}
	return p, nil
}

// FindByGameID retrieves the newest suggestion whose candidate game has the
// given id. Returns nil, nil if not found.
func (s *PendingStore) FindByGameID(ctx context.Context, gameID string) (*models.PendingSuggestion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+pendingColumns+` FROM pending_games
		WHERE game_data->>'id' = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, gameID)
	p, err := scanPending(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pending by game id: %w", err)
	}
	return p, nil
}

// List returns every tracked suggestion, newest first.
func (s *PendingStore) List(ctx context.Context) ([]models.PendingSuggestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pendingColumns+` FROM pending_games ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list pending suggestions: %w", err)
	}
	defer rows.Close()

	items := []models.PendingSuggestion{}
	for rows.Next() {
		p, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending suggestion: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// SetStatus moves the suggestion for issueNumber to status and stamps
// processed_at. comment is stored as given (nil clears it). It reports
// false when no row is tracked for the issue.
func (s *PendingStore) SetStatus(ctx context.Context, issueNumber int, status models.SuggestionStatus, comment *string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pending_games
		SET status = $1, comment = $2, processed_at = NOW()
		WHERE issue_number = $3
	`, status, comment, issueNumber)
	if err != nil {
		return false, fmt.Errorf("set pending status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set pending status rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteByIssue removes every suggestion row for issueNumber and returns how
// many were deleted.
func (s *PendingStore) DeleteByIssue(ctx context.Context, issueNumber int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pending_games WHERE issue_number = $1`, issueNumber)
	if err != nil {
		return 0, fmt.Errorf("delete pending by issue: %w", err)
	}
	return res.RowsAffected()
}

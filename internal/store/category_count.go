// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"dailygameshub/internal/models"
)

// CategoryCountStore manages the denormalized per-category game counts.
// The table holds one row per category plus a models.CategoryTotalKey row.
// An empty table means the aggregate has not been built yet.
type CategoryCountStore struct {
	db *sql.DB
}

// NewCategoryCountStore returns a new CategoryCountStore.
func NewCategoryCountStore(db *sql.DB) *CategoryCountStore {
	return &CategoryCountStore{db: db}
}

// Get returns the current counts, building them from the catalog when the
// aggregate does not exist yet.
func (s *CategoryCountStore) Get(ctx context.Context) (models.CategoryCounts, error) {
	counts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := counts[models.CategoryTotalKey]; !ok {
		return s.Recalculate(ctx)
	}
	return counts, nil
}

func (s *CategoryCountStore) load(ctx context.Context) (models.CategoryCounts, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, count FROM category_stats`)
	if err != nil {
		return nil, fmt.Errorf("load category counts: %w", err)
	}
	defer rows.Close()

	counts := models.CategoryCounts{}
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// Increment adds one to category and to the total.
func (s *CategoryCountStore) Increment(ctx context.Context, category string) error {
	return s.adjust(ctx, category, 1)
}

// Decrement subtracts one from category and from the total, never going
// below zero.
func (s *CategoryCountStore) Decrement(ctx context.Context, category string) error {
	return s.adjust(ctx, category, -1)
}

// adjust applies delta to the category row and the total row in one
// statement. Nothing is written while the aggregate is absent; the next Get
// rebuilds it from the catalog, which already reflects the change.
func (s *CategoryCountStore) adjust(ctx context.Context, category string, delta int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_stats (category, count)
		SELECT v.category, GREATEST($2::int, 0)
		FROM (VALUES ($1::text), ($3::text)) AS v(category)
		WHERE EXISTS (SELECT 1 FROM category_stats WHERE category = $3)
		ON CONFLICT (category) DO UPDATE SET
			count = GREATEST(category_stats.count + $2::int, 0),
			updated_at = NOW()
	`, category, delta, models.CategoryTotalKey)
	if err != nil {
		return fmt.Errorf("adjust category count: %w", err)
	}
	return nil
}

// Recalculate rebuilds the aggregate from a group-by over the catalog and
// returns it. The sum over category keys equals the total.
func (s *CategoryCountStore) Recalculate(ctx context.Context) (models.CategoryCounts, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_stats`); err != nil {
		return nil, fmt.Errorf("clear category counts: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		INSERT INTO category_stats (category, count)
		SELECT category, COUNT(*) FROM games GROUP BY category
		RETURNING category, count
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregate category counts: %w", err)
	}

	counts := models.CategoryCounts{}
	total := 0
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[category] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("aggregate category counts: %w", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO category_stats (category, count) VALUES ($1, $2)`,
		models.CategoryTotalKey, total,
	); err != nil {
		return nil, fmt.Errorf("store category total: %w", err)
	}
	counts[models.CategoryTotalKey] = total

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit category counts: %w", err)
	}
	return counts, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"dailygameshub/internal/models"
	"dailygameshub/internal/slug"
)

// GameStore manages the published catalog in the database.
type GameStore struct {
	db *sql.DB
}

// NewGameStore returns a new GameStore.
func NewGameStore(db *sql.DB) *GameStore {
	return &GameStore{db: db}
}

const gameColumns = `id, name, description, url, category, tags, popularity, created_at`

// scanGame scans a row into a Game. The pgtype map decodes the TEXT[] tags
// column, which database/sql cannot scan into a []string on its own.
func scanGame(m *pgtype.Map, scanner interface{ Scan(...any) error }) (*models.Game, error) {
	var g models.Game
	err := scanner.Scan(
		&g.ID, &g.Name, &g.Description, &g.URL, &g.Category,
		m.SQLScanner(&g.Tags), &g.Popularity, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	return &g, nil
}

// queryGames runs a query selecting gameColumns and collects the rows.
func (s *GameStore) queryGames(ctx context.Context, op, query string, args ...any) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	items := []models.Game{}
	for rows.Next() {
		g, err := scanGame(m, rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan game: %w", op, err)
		}
		items = append(items, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// List returns the whole catalog ordered by name.
func (s *GameStore) List(ctx context.Context) ([]models.Game, error) {
	return s.queryGames(ctx, "list games",
		`SELECT `+gameColumns+` FROM games ORDER BY lower(name)`)
}

// ListByCategory returns the games in one category ordered by name.
func (s *GameStore) ListByCategory(ctx context.Context, category string) ([]models.Game, error) {
	return s.queryGames(ctx, "list games by category",
		`SELECT `+gameColumns+` FROM games WHERE category = $1 ORDER BY lower(name)`, category)
}

// Search returns games whose name, description or any tag contains query,
// case-insensitively.
func (s *GameStore) Search(ctx context.Context, query string) ([]models.Game, error) {
	return s.queryGames(ctx, "search games", `
		SELECT `+gameColumns+` FROM games
		WHERE position(lower($1) IN lower(name)) > 0
		   OR position(lower($1) IN lower(description)) > 0
		   OR EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE position(lower($1) IN lower(t)) > 0)
		ORDER BY popularity DESC, lower(name)
	`, query)
}

// Popular returns up to limit games ordered by popularity, highest first.
func (s *GameStore) Popular(ctx context.Context, limit int) ([]models.Game, error) {
	return s.queryGames(ctx, "popular games", `
		SELECT `+gameColumns+` FROM games
		ORDER BY popularity DESC, lower(name)
		LIMIT $1
	`, limit)
}

// FindByIDs returns the games whose id is in ids. Unknown ids are skipped.
func (s *GameStore) FindByIDs(ctx context.Context, ids []string) ([]models.Game, error) {
	if len(ids) == 0 {
		return []models.Game{}, nil
	}
	return s.queryGames(ctx, "find games by ids",
		`SELECT `+gameColumns+` FROM games WHERE id = ANY($1::text[]) ORDER BY lower(name)`, ids)
}

// FindByID retrieves a game by id. Returns nil, nil if not found.
func (s *GameStore) FindByID(ctx context.Context, id string) (*models.Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	g, err := scanGame(pgtype.NewMap(), row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game by id: %w", err)
	}
	return g, nil
}

// FindExisting returns the first catalog game that matches name (by derived
// slug or case-insensitive exact name) or url (normalized url contained in
// the stored url). Empty arguments are ignored. Returns nil, nil if nothing
// matches.
func (s *GameStore) FindExisting(ctx context.Context, name, url string) (*models.Game, error) {
	var id, normURL string
	if name != "" {
		id = slug.Generate(name)
	}
	if url != "" {
		normURL = slug.NormalizeURL(url)
	}
	if id == "" && normURL == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE ($1 <> '' AND (id = $1 OR lower(name) = lower($2)))
		   OR ($3 <> '' AND position($3 IN lower(url)) > 0)
		ORDER BY created_at
		LIMIT 1
	`, id, name, normURL)
	g, err := scanGame(pgtype.NewMap(), row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find existing game: %w", err)
	}
	return g, nil
}

// Add inserts g into the catalog. It reports false without error when a game
// with the same id already exists.
func (s *GameStore) Add(ctx context.Context, g *models.Game) (bool, error) {
	tags := g.Tags
	if tags == nil {
		tags = []string{}
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, name, description, url, category, tags, popularity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, g.ID, g.Name, g.Description, g.URL, g.Category, tags, g.Popularity)
	if err != nil {
		return false, fmt.Errorf("add game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add game rows affected: %w", err)
	}
	return n > 0, nil
}

// Delete removes a game by id and returns its category, or "" when no such
// game existed.
func (s *GameStore) Delete(ctx context.Context, id string) (string, error) {
	var category string
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM games WHERE id = $1 RETURNING category`, id,
	).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("delete game: %w", err)
	}
	return category, nil
}

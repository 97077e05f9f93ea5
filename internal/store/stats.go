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

// StatsStore manages per-game interaction counters and the popularity score
// derived from them.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore returns a new StatsStore.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// deltas returns the counter increments an interaction applies.
func deltas(t models.InteractionType) (clicks, favorites int, err error) {
	switch t {
	case models.InteractionClick:
		return 1, 0, nil
	case models.InteractionFavorite:
		return 0, 1, nil
	case models.InteractionUnfavorite:
		return 0, -1, nil
	}
	return 0, 0, fmt.Errorf("unknown interaction type %q", t)
}

// TrackInteraction records one interaction for gameID. The counter change is
// a single atomic upsert. The popularity score is then recomputed from the
// returned counters and written to both game_stats and games; that second
// step is a separate read-modify-write and can race with a concurrent
// interaction on the same game, leaving a briefly stale score.
// PopularityChanged reports whether the games row took a new value.
func (s *StatsStore) TrackInteraction(ctx context.Context, gameID string, t models.InteractionType) (*models.GameStats, error) {
	dClicks, dFavorites, err := deltas(t)
	if err != nil {
		return nil, err
	}

	stats := models.GameStats{GameID: gameID}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO game_stats (game_id, total_clicks, total_favorites)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id) DO UPDATE SET
			total_clicks = game_stats.total_clicks + EXCLUDED.total_clicks,
			total_favorites = game_stats.total_favorites + EXCLUDED.total_favorites,
			last_updated = NOW()
		RETURNING total_clicks, total_favorites
	`, gameID, dClicks, dFavorites).Scan(&stats.TotalClicks, &stats.TotalFavorites)
	if err != nil {
		return nil, fmt.Errorf("increment game stats: %w", err)
	}

	stats.PopularityScore = models.PopularityScore(stats.RawScore())

	err = s.db.QueryRowContext(ctx, `
		UPDATE game_stats SET popularity_score = $1, last_updated = NOW()
		WHERE game_id = $2
		RETURNING last_updated
	`, stats.PopularityScore, gameID).Scan(&stats.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("update popularity score: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE games SET popularity = $1
		WHERE id = $2 AND popularity IS DISTINCT FROM $1
	`, stats.PopularityScore, gameID)
	if err != nil {
		return nil, fmt.Errorf("update game popularity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update game popularity: %w", err)
	}
	stats.PopularityChanged = n > 0

	return &stats, nil
}

// Get returns the counters for gameID. Returns nil, nil if the game has no
// recorded interactions.
func (s *StatsStore) Get(ctx context.Context, gameID string) (*models.GameStats, error) {
	var st models.GameStats
	err := s.db.QueryRowContext(ctx, `
		SELECT game_id, total_clicks, total_favorites, popularity_score, last_updated
		FROM game_stats WHERE game_id = $1
	`, gameID).Scan(&st.GameID, &st.TotalClicks, &st.TotalFavorites, &st.PopularityScore, &st.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game stats: %w", err)
	}
	return &st, nil
}

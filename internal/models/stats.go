// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// InteractionType is a tracked visitor action on a game.
type InteractionType string

const (
	InteractionClick      InteractionType = "click"
	InteractionFavorite   InteractionType = "favorite"
	InteractionUnfavorite InteractionType = "unfavorite"
)

// Valid reports whether t is one of the known interaction types.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionClick, InteractionFavorite, InteractionUnfavorite:
		return true
	}
	return false
}

// Weights applied to cumulative counters when scoring popularity.
const (
	ClickWeight    = 1
	FavoriteWeight = 3
)

// GameStats holds the cumulative interaction counters for one game.
// TotalFavorites is signed: unfavorites without a matching favorite drive it
// below zero.
type GameStats struct {
	GameID          string    `json:"gameId"`
	TotalClicks     int       `json:"totalClicks"`
	TotalFavorites  int       `json:"totalFavorites"`
	PopularityScore int       `json:"popularityScore"`
	LastUpdated     time.Time `json:"lastUpdated"`

	// PopularityChanged is set by TrackInteraction when the catalog row's
	// popularity was rewritten to a different value.
	PopularityChanged bool `json:"-"`
}

// RawScore is the weighted sum the popularity thresholds are applied to.
func (s *GameStats) RawScore() int {
	return s.TotalClicks*ClickWeight + s.TotalFavorites*FavoriteWeight
}

// PopularityScore maps a raw weighted score onto the 1-5 scale.
func PopularityScore(raw int) int {
	switch {
	case raw >= 100:
		return 5
	case raw >= 50:
		return 4
	case raw >= 20:
		return 3
	case raw >= 5:
		return 2
	default:
		return 1
	}
}

// CategoryTotalKey is the CategoryCounts key holding the catalog size.
const CategoryTotalKey = "total"

// CategoryCounts maps category id to the number of catalog games in it, plus
// CategoryTotalKey for the overall count.
type CategoryCounts map[string]int

// Total returns the aggregate catalog count.
func (c CategoryCounts) Total() int {
	return c[CategoryTotalKey]
}

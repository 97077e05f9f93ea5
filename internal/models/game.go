// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Game is a published catalog entry. ID is the slug derived from Name and is
// unique across the catalog.
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Popularity  int       `json:"popularity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Category is one of the fixed catalog groupings.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Categories is the fixed set of catalog categories, in display order.
var Categories = []Category{
	{ID: "word", Name: "Word Games", Description: "Daily word puzzles and challenges"},
	{ID: "geography", Name: "Geography", Description: "Test your knowledge of places and locations"},
	{ID: "math", Name: "Math & Logic", Description: "Number puzzles and logic challenges"},
	{ID: "music", Name: "Music", Description: "Test your music knowledge and listening skills"},
	{ID: "sports", Name: "Sports", Description: "Sports-themed puzzles and prediction games"},
	{ID: "trivia", Name: "Trivia", Description: "Daily trivia and knowledge challenges"},
}

// IsCategory reports whether id names one of the fixed categories.
func IsCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

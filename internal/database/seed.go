package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"dailygameshub/internal/models"
)

// seedGames is the launch catalog. Popularity is on the 1-5 scale.
var seedGames = []models.Game{
	{ID: "wordle", Name: "Wordle", Description: "Guess the five-letter word in six tries with color-coded hints", URL: "https://www.nytimes.com/games/wordle/index.html", Category: "word", Tags: []string{"puzzle"}, Popularity: 5},
	{ID: "connections", Name: "Connections", Description: "Find connections between groups of words", URL: "https://www.nytimes.com/games/connections", Category: "word", Tags: []string{"puzzle", "groups"}, Popularity: 5},
	{ID: "worldle", Name: "Worldle", Description: "Guess the country by its silhouette", URL: "https://worldle.teuteuf.fr/", Category: "geography", Tags: []string{"countries"}, Popularity: 4},
	{ID: "timeguessr", Name: "TimeGuessr", Description: "Guess the year a photo was taken", URL: "https://timeguessr.com/", Category: "trivia", Tags: []string{"history", "photos"}, Popularity: 4},
	{ID: "globle", Name: "Globle", Description: "Guess the country with proximity hints", URL: "https://globle-game.com/", Category: "geography", Tags: []string{"countries"}, Popularity: 4},
	{ID: "nerdle", Name: "Nerdle", Description: "Guess the equation with number hints", URL: "https://nerdlegame.com/", Category: "math", Tags: []string{"equation"}, Popularity: 4},
	{ID: "heardle", Name: "Heardle", Description: "Guess the song from short audio clips", URL: "https://heardlewordle.io/", Category: "music", Tags: []string{"audio"}, Popularity: 4},
	{ID: "framed", Name: "Framed", Description: "Guess the movie from screenshots", URL: "https://framed.wtf/", Category: "trivia", Tags: []string{"movies", "screenshots"}, Popularity: 4},
	{ID: "quordle", Name: "Quordle", Description: "Solve four Wordle-style puzzles simultaneously", URL: "https://www.merriam-webster.com/games/quordle/#/", Category: "word", Tags: []string{"puzzle", "multiple"}, Popularity: 4},
	{ID: "semantle", Name: "Semantle", Description: "Guess the word based on semantic similarity", URL: "https://semantle.com/", Category: "word", Tags: []string{"meaning"}, Popularity: 4},
	{ID: "immaculate-grid", Name: "Immaculate Grid", Description: "Fill a 3x3 grid with players who match the criteria", URL: "https://www.immaculategrid.com/", Category: "sports", Tags: []string{"grid", "players"}, Popularity: 4},
	{ID: "poeltl", Name: "Poeltl", Description: "Guess the NBA player with limited clues", URL: "https://poeltl.nbpa.com", Category: "sports", Tags: []string{"basketball", "nba"}, Popularity: 4},
	{ID: "weddle", Name: "Weddle", Description: "Guess the NFL player with limited clues", URL: "https://www.weddlegame.com/", Category: "sports", Tags: []string{"football", "nfl"}, Popularity: 4},
	{ID: "crosswordle", Name: "Crosswordle", Description: "A crossword-style Wordle variant with multiple words", URL: "https://crosswordle.vercel.app/", Category: "word", Tags: []string{"puzzle", "crossword"}, Popularity: 4},
	{ID: "waffle", Name: "Waffle", Description: "Rearrange letters to form six words in a waffle pattern", URL: "https://wafflegame.net/", Category: "word", Tags: []string{"puzzle", "rearrange"}, Popularity: 3},
	{ID: "mathler", Name: "Mathler", Description: "Find the hidden calculation that equals the target number", URL: "https://www.mathler.com/", Category: "math", Tags: []string{"calculation"}, Popularity: 3},
	{ID: "countryle", Name: "Countryle", Description: "Guess the country with hints about location, population, and more", URL: "https://countryle.com/", Category: "geography", Tags: []string{"countries"}, Popularity: 3},
	{ID: "flagle", Name: "Flagle", Description: "Guess the country from its flag, revealed piece by piece", URL: "https://www.flagle.io/", Category: "geography", Tags: []string{"flags"}, Popularity: 4},
	{ID: "moviedle", Name: "Moviedle", Description: "Guess the movie from a 1-second clip that gets longer with each guess", URL: "https://moviedle.net/", Category: "trivia", Tags: []string{"clips"}, Popularity: 4},
	{ID: "actorle", Name: "Actorle", Description: "Guess the actor from their filmography clues", URL: "https://actorle.com/", Category: "trivia", Tags: []string{"actors"}, Popularity: 3},
}

// Seed populates an empty catalog with the launch games. It does nothing
// when the games table already has rows. The category_stats cache is
// cleared so the next read recomputes it from the seeded catalog.
func Seed(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games").Scan(&count); err != nil {
		return 0, fmt.Errorf("seed check games: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping", "games", count)
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, g := range seedGames {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO games (id, name, description, url, category, tags, popularity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, g.ID, g.Name, g.Description, g.URL, g.Category, g.Tags, g.Popularity)
		if err != nil {
			return 0, fmt.Errorf("seed insert %s: %w", g.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM category_stats"); err != nil {
		return 0, fmt.Errorf("seed reset category stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with launch catalog", "games", inserted)
	return inserted, nil
}

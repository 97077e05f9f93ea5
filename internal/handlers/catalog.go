// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"dailygameshub/internal/apperr"
	"dailygameshub/internal/cache"
	"dailygameshub/internal/models"
)

// Limits for the popular listing.
const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

// GameReader reads the catalog.
type GameReader interface {
	List(ctx context.Context) ([]models.Game, error)
	ListByCategory(ctx context.Context, category string) ([]models.Game, error)
	Search(ctx context.Context, query string) ([]models.Game, error)
	Popular(ctx context.Context, limit int) ([]models.Game, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Game, error)
	FindByID(ctx context.Context, id string) (*models.Game, error)
}

// CountReader reads the category count aggregate.
type CountReader interface {
	Get(ctx context.Context) (models.CategoryCounts, error)
	Recalculate(ctx context.Context) (models.CategoryCounts, error)
}

// ResponseCache stores encoded catalog responses.
type ResponseCache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any)
}

// Catalog serves the read side of the game catalog. List responses go
// through the response cache, which is invalidated on catalog writes.
type Catalog struct {
	games  GameReader
	counts CountReader
	cache  ResponseCache
}

// NewCatalog creates a Catalog handler group.
func NewCatalog(games GameReader, counts CountReader, c ResponseCache) *Catalog {
	if c == nil {
		c = noCache{}
	}
	return &Catalog{games: games, counts: counts, cache: c}
}

type gamesResponse struct {
	Games []models.Game `json:"games"`
}

// Games lists the catalog. ?q searches, ?category filters and
// ?sort=popular orders by popularity with an optional ?limit.
func (c *Catalog) Games(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		key   string
		fetch func() ([]models.Game, error)
	)
	switch {
	case strings.TrimSpace(q.Get("q")) != "":
		query := q.Get("q")
		key = cache.SearchKey(query)
		fetch = func() ([]models.Game, error) { return c.games.Search(ctx, strings.TrimSpace(query)) }
	case q.Get("category") != "":
		category := strings.ToLower(q.Get("category"))
		if !models.IsCategory(category) {
			writeJSON(w, http.StatusOK, gamesResponse{Games: []models.Game{}})
			return
		}
		key = cache.CategoryKey(category)
		fetch = func() ([]models.Game, error) { return c.games.ListByCategory(ctx, category) }
	case q.Get("sort") == "popular":
		limit := popularLimit(q.Get("limit"))
		key = cache.PopularKey(limit)
		fetch = func() ([]models.Game, error) { return c.games.Popular(ctx, limit) }
	default:
		key = cache.AllGamesKey()
		fetch = func() ([]models.Game, error) { return c.games.List(ctx) }
	}

	var resp gamesResponse
	if c.cache.Get(ctx, key, &resp) {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	games, err := fetch()
	if err != nil {
		writeError(w, r, err, "Failed to fetch games")
		return
	}
	resp = gamesResponse{Games: games}
	c.cache.Set(ctx, key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func popularLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultPopularLimit
	}
	return min(n, maxPopularLimit)
}

// Game returns one catalog game by id.
func (c *Catalog) Game(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var g models.Game
	if c.cache.Get(ctx, cache.GameKey(id), &g) {
		writeJSON(w, http.StatusOK, g)
		return
	}

	found, err := c.games.FindByID(ctx, id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch game")
		return
	}
	if found == nil {
		writeError(w, r, apperr.NotFound("Game not found"), "")
		return
	}
	c.cache.Set(ctx, cache.GameKey(id), found)
	writeJSON(w, http.StatusOK, found)
}

// Categories returns the fixed category list.
func (c *Catalog) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": models.Categories})
}

// CategoryCounts returns the per-category game counts. ?recalculate=true
// rebuilds the aggregate from the catalog first.
func (c *Catalog) CategoryCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		counts models.CategoryCounts
		err    error
	)
	if r.URL.Query().Get("recalculate") == "true" {
		counts, err = c.counts.Recalculate(ctx)
	} else {
		counts, err = c.counts.Get(ctx)
	}
	if err != nil {
		writeError(w, r, err, "Failed to retrieve category counts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}

// Favorites resolves a list of favorite ids to catalog games. Anything other
// than a non-empty array of strings yields an empty list.
func (c *Catalog) Favorites(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FavoriteIDs json.RawMessage `json:"favoriteIds"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}

	var ids []string
	if err := json.Unmarshal(req.FavoriteIDs, &ids); err != nil || len(ids) == 0 {
		writeJSON(w, http.StatusOK, gamesResponse{Games: []models.Game{}})
		return
	}

	games, err := c.games.FindByIDs(r.Context(), ids)
	if err != nil {
		writeError(w, r, err, "Failed to fetch favorite games")
		return
	}
	writeJSON(w, http.StatusOK, gamesResponse{Games: games})
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory collaborators and request helpers
// shared by the handler tests.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"dailygameshub/internal/cache"
	"dailygameshub/internal/email"
	"dailygameshub/internal/github"
	"dailygameshub/internal/models"
	"dailygameshub/internal/moderation"
)

var errBoom = errors.New("boom")

type fakeGames struct {
	games    []models.Game
	err      error
	lists    int
	deleted  []string
	searched string
}

func (f *fakeGames) List(context.Context) ([]models.Game, error) {
	f.lists++
	return f.games, f.err
}

func (f *fakeGames) ListByCategory(_ context.Context, category string) ([]models.Game, error) {
	out := []models.Game{}
	for _, g := range f.games {
		if g.Category == category {
			out = append(out, g)
		}
	}
	return out, f.err
}

func (f *fakeGames) Search(_ context.Context, q string) ([]models.Game, error) {
	f.searched = q
	out := []models.Game{}
	for _, g := range f.games {
		if strings.Contains(strings.ToLower(g.Name), strings.ToLower(q)) {
			out = append(out, g)
		}
	}
	return out, f.err
}

func (f *fakeGames) Popular(_ context.Context, limit int) ([]models.Game, error) {
	if limit < len(f.games) {
		return f.games[:limit], f.err
	}
	return f.games, f.err
}

func (f *fakeGames) FindByIDs(_ context.Context, ids []string) ([]models.Game, error) {
	out := []models.Game{}
	for _, g := range f.games {
		for _, id := range ids {
			if g.ID == id {
				out = append(out, g)
			}
		}
	}
	return out, f.err
}

func (f *fakeGames) FindByID(_ context.Context, id string) (*models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.games {
		if f.games[i].ID == id {
			return &f.games[i], nil
		}
	}
	return nil, nil
}

func (f *fakeGames) FindExisting(_ context.Context, name, _ string) (*models.Game, error) {
	for i := range f.games {
		if strings.EqualFold(f.games[i].Name, name) {
			return &f.games[i], nil
		}
	}
	return nil, f.err
}

func (f *fakeGames) Delete(_ context.Context, id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for i, g := range f.games {
		if g.ID == id {
			f.games = append(f.games[:i], f.games[i+1:]...)
			f.deleted = append(f.deleted, id)
			return g.Category, nil
		}
	}
	return "", nil
}

type fakeCounts struct {
	counts       models.CategoryCounts
	recalculated bool
	decremented  []string
}

func (f *fakeCounts) Get(context.Context) (models.CategoryCounts, error) { return f.counts, nil }

func (f *fakeCounts) Recalculate(context.Context) (models.CategoryCounts, error) {
	f.recalculated = true
	return f.counts, nil
}

func (f *fakeCounts) Decrement(_ context.Context, category string) error {
	f.decremented = append(f.decremented, category)
	return nil
}

type fakeStats struct {
	calls   []models.InteractionType
	err     error
	changed bool
}

func (f *fakeStats) TrackInteraction(_ context.Context, id string, t models.InteractionType) (*models.GameStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, t)
	return &models.GameStats{GameID: id, PopularityChanged: f.changed}, nil
}

type fakeIssues struct {
	configured bool
	err        error
	created    []github.NewIssue
}

func (f *fakeIssues) Configured() bool { return f.configured }

func (f *fakeIssues) CreateIssue(_ context.Context, in github.NewIssue) (*github.Issue, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	n := len(f.created)
	return &github.Issue{Number: n, URL: "https://github.com/dgh/catalog/issues/" + strconv.Itoa(n)}, nil
}

type fakePending struct {
	rows []models.PendingSuggestion
	err  error
}

func (f *fakePending) Create(_ context.Context, p *models.PendingSuggestion) (*models.PendingSuggestion, error) {
	f.rows = append(f.rows, *p)
	return p, nil
}

func (f *fakePending) FindByGameID(_ context.Context, id string) (*models.PendingSuggestion, error) {
	for i := range f.rows {
		if f.rows[i].GameData.ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}

func (f *fakePending) List(context.Context) ([]models.PendingSuggestion, error) {
	return f.rows, f.err
}

type fakeContacts struct {
	rows map[int]string
}

func (f *fakeContacts) Create(_ context.Context, n int, addr string) (*models.ContactEmail, error) {
	if f.rows == nil {
		f.rows = map[int]string{}
	}
	f.rows[n] = addr
	return &models.ContactEmail{IssueNumber: n, Email: addr}, nil
}

type fakeProcessor struct {
	got *moderation.Issue
	out *moderation.Outcome
	err error
}

func (f *fakeProcessor) Process(_ context.Context, is *moderation.Issue) (*moderation.Outcome, error) {
	f.got = is
	return f.out, f.err
}

type fakeMailer struct {
	configured bool
	err        error
	sent       []string
}

func (f *fakeMailer) IsConfigured() bool { return f.configured }

func (f *fakeMailer) Notify(_ context.Context, to, _ string, _ email.Status, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

// testCache returns a catalog cache backed by an in-memory Valkey.
func testCache(t *testing.T) (*cache.CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewCatalogCache(client, cache.DefaultCatalogTTL), mr
}

// do sends a request through h and returns the recorder.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// errorMessage returns the "error" field of a JSON error response.
func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	decode(t, rr, &body)
	return body.Error
}

func sampleGames() []models.Game {
	return []models.Game{
		{ID: "wordle", Name: "Wordle", Category: "word", URL: "https://www.nytimes.com/games/wordle", Popularity: 5, Tags: []string{}},
		{ID: "globle", Name: "Globle", Category: "geography", URL: "https://globle-game.com", Popularity: 4, Tags: []string{}},
		{ID: "heardle", Name: "Heardle", Category: "music", URL: "https://heardle.app", Popularity: 3, Tags: []string{}},
	}
}

package suggest

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"dailygameshub/internal/github"
	"dailygameshub/internal/models"
	"dailygameshub/internal/slug"
)

type fakeIssues struct {
	mu         sync.Mutex
	configured bool
	err        error
	next       int
	created    []github.NewIssue
}

func (f *fakeIssues) Configured() bool { return f.configured }

func (f *fakeIssues) CreateIssue(_ context.Context, in github.NewIssue) (*github.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.next++
	f.created = append(f.created, in)
	return &github.Issue{Number: f.next, URL: "https://github.com/dgh/catalog/issues/" + strconv.Itoa(f.next)}, nil
}

type fakeGames struct {
	games []models.Game
	err   error
}

func (f *fakeGames) FindExisting(_ context.Context, name, url string) (*models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.games {
		g := &f.games[i]
		if name != "" && (g.ID == slug.Generate(name) || strings.EqualFold(g.Name, name)) {
			return g, nil
		}
		if url != "" && strings.Contains(slug.NormalizeURL(g.URL), slug.NormalizeURL(url)) {
			return g, nil
		}
	}
	return nil, nil
}

type fakePending struct {
	mu   sync.Mutex
	rows []models.PendingSuggestion
	err  error
}

func (f *fakePending) Create(_ context.Context, p *models.PendingSuggestion) (*models.PendingSuggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.rows = append(f.rows, *p)
	return p, nil
}

func (f *fakePending) FindByGameID(_ context.Context, id string) (*models.PendingSuggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].GameData.ID == id {
			p := f.rows[i]
			return &p, nil
		}
	}
	return nil, nil
}

type fakeContacts struct {
	rows map[int]string
	err  error
}

func (f *fakeContacts) Create(_ context.Context, issue int, email string) (*models.ContactEmail, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rows == nil {
		f.rows = make(map[int]string)
	}
	f.rows[issue] = email
	return &models.ContactEmail{IssueNumber: issue, Email: email}, nil
}

var errBoom = errors.New("boom")

package moderation

import (
	"context"
	"errors"
	"sync"

	"dailygameshub/internal/email"
	"dailygameshub/internal/models"
)

var errBoom = errors.New("boom")

type fakeCatalog struct {
	games map[string]models.Game
	err   error
}

func (f *fakeCatalog) Add(_ context.Context, g *models.Game) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.games == nil {
		f.games = map[string]models.Game{}
	}
	if _, ok := f.games[g.ID]; ok {
		return false, nil
	}
	f.games[g.ID] = *g
	return true, nil
}

type fakeCounts struct {
	incremented []string
}

func (f *fakeCounts) Increment(_ context.Context, category string) error {
	f.incremented = append(f.incremented, category)
	return nil
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) InvalidateAll(context.Context) { f.invalidations++ }

type fakePending struct {
	mu      sync.Mutex
	rows    map[int]*models.PendingSuggestion
	deleted []int
}

func (f *fakePending) FindByIssue(_ context.Context, n int) (*models.PendingSuggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[n]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePending) SetStatus(_ context.Context, n int, status models.SuggestionStatus, comment *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[n]
	if !ok {
		return false, nil
	}
	p.Status = status
	p.Comment = comment
	return true, nil
}

func (f *fakePending) DeleteByIssue(_ context.Context, n int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, n)
	if _, ok := f.rows[n]; !ok {
		return 0, nil
	}
	delete(f.rows, n)
	return 1, nil
}

type fakeContacts struct {
	rows    map[int]string
	deleted []int
}

func (f *fakeContacts) Latest(_ context.Context, n int) (*models.ContactEmail, error) {
	e, ok := f.rows[n]
	if !ok {
		return nil, nil
	}
	return &models.ContactEmail{IssueNumber: n, Email: e}, nil
}

func (f *fakeContacts) DeleteByIssue(_ context.Context, n int) (int64, error) {
	f.deleted = append(f.deleted, n)
	if _, ok := f.rows[n]; !ok {
		return 0, nil
	}
	delete(f.rows, n)
	return 1, nil
}

type fakeTracker struct {
	comment    string
	commentErr error
	fetches    int
	labels     map[int][]string
}

func (f *fakeTracker) Configured() bool { return true }

func (f *fakeTracker) LatestComment(context.Context, string, string, int) (string, bool, error) {
	f.fetches++
	if f.commentErr != nil {
		return "", false, f.commentErr
	}
	return f.comment, f.comment != "", nil
}

func (f *fakeTracker) AddLabels(_ context.Context, n int, labels ...string) error {
	if f.labels == nil {
		f.labels = map[int][]string{}
	}
	f.labels[n] = append(f.labels[n], labels...)
	return nil
}

type sentEmail struct {
	to, game string
	status   email.Status
	comment  string
}

type fakeNotifier struct {
	sent []sentEmail
	err  error
}

func (f *fakeNotifier) IsConfigured() bool { return true }

func (f *fakeNotifier) Notify(_ context.Context, to, game string, status email.Status, comment string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, game: game, status: status, comment: comment})
	return nil
}

type fakeDeploy struct {
	calls int
	err   error
}

func (f *fakeDeploy) Trigger(context.Context) error {
	f.calls++
	return f.err
}

type fixture struct {
	catalog  *fakeCatalog
	counts   *fakeCounts
	cache    *fakeCache
	pending  *fakePending
	contacts *fakeContacts
	tracker  *fakeTracker
	notifier *fakeNotifier
	deploy   *fakeDeploy
	proc     *Processor
}

func newFixture() *fixture {
	f := &fixture{
		catalog:  &fakeCatalog{},
		counts:   &fakeCounts{},
		cache:    &fakeCache{},
		pending:  &fakePending{rows: map[int]*models.PendingSuggestion{}},
		contacts: &fakeContacts{rows: map[int]string{}},
		tracker:  &fakeTracker{},
		notifier: &fakeNotifier{},
		deploy:   &fakeDeploy{},
	}
	f.proc = NewProcessor(Deps{
		Catalog:  f.catalog,
		Counts:   f.counts,
		Cache:    f.cache,
		Pending:  f.pending,
		Contacts: f.contacts,
		Tracker:  f.tracker,
		Notifier: f.notifier,
		Deploy:   f.deploy,
	})
	return f
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package suggest implements public intake: game suggestions that become
// moderation issues, the duplicate check shown while the form is filled in,
// and free-form issue reports.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"golang.org/x/sync/errgroup"

	"dailygameshub/internal/apperr"
	"dailygameshub/internal/github"
	"dailygameshub/internal/models"
	"dailygameshub/internal/slug"
)

// IssueCreator opens tracking issues.
type IssueCreator interface {
	Configured() bool
	CreateIssue(ctx context.Context, in github.NewIssue) (*github.Issue, error)
}

// CatalogFinder looks up catalog collisions.
type CatalogFinder interface {
	FindExisting(ctx context.Context, name, url string) (*models.Game, error)
}

// PendingRecorder stores and finds suggestions awaiting moderation.
type PendingRecorder interface {
	Create(ctx context.Context, p *models.PendingSuggestion) (*models.PendingSuggestion, error)
	FindByGameID(ctx context.Context, gameID string) (*models.PendingSuggestion, error)
}

// ContactRecorder stores the suggester's address per issue.
type ContactRecorder interface {
	Create(ctx context.Context, issueNumber int, email string) (*models.ContactEmail, error)
}

// Suggestion is a submitted game candidate.
type Suggestion struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Tags        TagList `json:"tags"`
	Email       string  `json:"email,omitempty"`
}

// Result is the outcome of a successful Submit.
type Result struct {
	IssueNumber int         `json:"issueNumber"`
	IssueURL    string      `json:"issueUrl"`
	Game        models.Game `json:"game"`
}

// Report is a free-form issue report about the site or a listed game.
type Report struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	GameName    string `json:"gameName,omitempty"`
	GameURL     string `json:"gameUrl,omitempty"`
}

// ReportTypes are the accepted Report.Type values.
var ReportTypes = []string{"bug", "feature", "content"}

// GameRef identifies a catalog game in an existence check.
type GameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PendingRef identifies a pending suggestion in an existence check.
type PendingRef struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	Status models.SuggestionStatus `json:"status"`
}

// ExistsResult reports whether a candidate collides with the catalog or a
// pending suggestion.
type ExistsResult struct {
	Exists       bool        `json:"exists"`
	ExistingGame *GameRef    `json:"existingGame"`
	PendingGame  *PendingRef `json:"pendingGame"`
}

// Service handles suggestion intake.
type Service struct {
	issues   IssueCreator
	games    CatalogFinder
	pending  PendingRecorder
	contacts ContactRecorder
}

// NewService creates a Service.
func NewService(issues IssueCreator, games CatalogFinder, pending PendingRecorder, contacts ContactRecorder) *Service {
	return &Service{issues: issues, games: games, pending: pending, contacts: contacts}
}

// Normalize validates a suggestion and returns the candidate game it
// describes, along with the trimmed email (empty when none was given).
func Normalize(in Suggestion) (models.Game, string, error) {
	name := strings.TrimSpace(in.Name)
	url := strings.TrimSpace(in.URL)
	description := strings.TrimSpace(in.Description)
	category := strings.ToLower(strings.TrimSpace(in.Category))
	email := strings.TrimSpace(in.Email)

	if name == "" || url == "" || description == "" || category == "" {
		return models.Game{}, "", apperr.Validation("Missing required fields")
	}
	if len([]rune(description)) > MaxDescriptionLength {
		return models.Game{}, "", apperr.Validation("Description must be %d characters or fewer", MaxDescriptionLength)
	}
	if !models.IsCategory(category) {
		return models.Game{}, "", apperr.Validation("Invalid category")
	}
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return models.Game{}, "", apperr.Validation("Invalid email address")
		}
	}

	return models.Game{
		ID:          slug.Generate(name),
		Name:        name,
		Description: Capitalize(Truncate(description, MaxDescriptionLength)),
		URL:         url,
		Category:    category,
		Tags:        NormalizeTags(in.Tags, category),
		Popularity:  1,
	}, email, nil
}

// Submit validates a suggestion, opens its moderation issue and records it
// as pending. Store failures after the issue exists are logged, not
// returned: the issue body carries every field the webhook needs.
func (s *Service) Submit(ctx context.Context, in Suggestion) (*Result, error) {
	if !s.issues.Configured() {
		return nil, apperr.Configuration("GitHub token not configured")
	}

	game, email, err := Normalize(in)
	if err != nil {
		return nil, err
	}

	issue, err := s.issues.CreateIssue(ctx, github.NewIssue{
		Title:  IssueTitle(game.Name),
		Body:   IssueBody(game),
		Labels: IssueLabels(email != ""),
	})
	if err != nil {
		return nil, apperr.Upstream("Failed to create GitHub issue", err)
	}
	slog.Info("suggestion issue created", "issue", issue.Number, "game", game.ID)

	pending := &models.PendingSuggestion{
		IssueNumber: issue.Number,
		GameData:    game,
		Status:      models.SuggestionPending,
	}
	if email != "" {
		pending.ContactEmail = &email
		if _, err := s.contacts.Create(ctx, issue.Number, email); err != nil {
			slog.Error("store contact email", "issue", issue.Number, "error", err)
		}
	}
	if _, err := s.pending.Create(ctx, pending); err != nil {
		slog.Error("store pending suggestion", "issue", issue.Number, "error", err)
	}

	return &Result{IssueNumber: issue.Number, IssueURL: issue.URL, Game: game}, nil
}

// CheckGameExists reports whether name or url collides with a catalog game
// or, by derived id, with a pending suggestion. The two lookups run
// concurrently.
func (s *Service) CheckGameExists(ctx context.Context, name, url string) (*ExistsResult, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" && url == "" {
		return nil, apperr.Validation("Either name or URL is required")
	}

	var (
		existing *models.Game
		pending  *models.PendingSuggestion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		existing, err = s.games.FindExisting(gctx, name, url)
		return err
	})
	if name != "" {
		g.Go(func() error {
			var err error
			pending, err = s.pending.FindByGameID(gctx, slug.Generate(name))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check game exists: %w", err)
	}

	res := &ExistsResult{Exists: existing != nil || pending != nil}
	if existing != nil {
		res.ExistingGame = &GameRef{ID: existing.ID, Name: existing.Name, URL: existing.URL}
	}
	if pending != nil {
		res.PendingGame = &PendingRef{ID: pending.GameData.ID, Name: pending.GameData.Name, Status: pending.Status}
	}
	return res, nil
}

// ReportIssue opens an issue for a user report, labeled with user-report and
// the report type.
func (s *Service) ReportIssue(ctx context.Context, r Report) (*github.Issue, error) {
	if !s.issues.Configured() {
		return nil, apperr.Configuration("GitHub token not configured")
	}

	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Type = strings.TrimSpace(r.Type)
	r.GameName = strings.TrimSpace(r.GameName)
	r.GameURL = strings.TrimSpace(r.GameURL)
	if r.Title == "" || r.Description == "" || r.Type == "" {
		return nil, apperr.Validation("Missing required fields")
	}
	label := strings.ToLower(r.Type)
	if !isReportType(label) {
		return nil, apperr.Validation("Invalid report type")
	}

	issue, err := s.issues.CreateIssue(ctx, github.NewIssue{
		Title:  r.Type + ": " + r.Title,
		Body:   reportBody(r),
		Labels: []string{LabelUserReport, label},
	})
	if err != nil {
		return nil, apperr.Upstream("Failed to create GitHub issue", err)
	}
	slog.Info("issue report created", "issue", issue.Number, "type", label)
	return issue, nil
}

func isReportType(t string) bool {
	for _, rt := range ReportTypes {
		if rt == t {
			return true
		}
	}
	return false
}

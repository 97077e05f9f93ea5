// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package moderation applies the outcome of a closed suggestion issue: an
// accepted game joins the catalog, a rejected one notifies the suggester, and
// the issue's pending and contact rows are removed either way.
package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"dailygameshub/internal/email"
	"dailygameshub/internal/models"
	"dailygameshub/internal/suggest"
)

// Outcome messages returned to the webhook sender.
const (
	MsgAdded         = "Game added successfully"
	MsgAlreadyExists = "Game already exists"
	MsgRejected      = "Rejection notification sent"
	MsgNoAction      = "No action taken"
)

// Labels applied to an issue once its outcome has been processed.
const (
	LabelApproved = "approved"
	LabelRejected = "rejected"
)

// Catalog inserts accepted games.
type Catalog interface {
	Add(ctx context.Context, g *models.Game) (bool, error)
}

// CategoryCounter maintains per-category game counts.
type CategoryCounter interface {
	Increment(ctx context.Context, category string) error
}

// CacheInvalidator drops cached catalog responses.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// PendingStore tracks suggestions awaiting moderation.
type PendingStore interface {
	FindByIssue(ctx context.Context, issueNumber int) (*models.PendingSuggestion, error)
	SetStatus(ctx context.Context, issueNumber int, status models.SuggestionStatus, comment *string) (bool, error)
	DeleteByIssue(ctx context.Context, issueNumber int) (int64, error)
}

// ContactStore holds legacy per-issue contact addresses.
type ContactStore interface {
	Latest(ctx context.Context, issueNumber int) (*models.ContactEmail, error)
	DeleteByIssue(ctx context.Context, issueNumber int) (int64, error)
}

// Tracker reads moderator comments and labels processed issues.
type Tracker interface {
	Configured() bool
	LatestComment(ctx context.Context, owner, repo string, number int) (string, bool, error)
	AddLabels(ctx context.Context, number int, labels ...string) error
}

// Notifier emails suggesters.
type Notifier interface {
	IsConfigured() bool
	Notify(ctx context.Context, to, gameName string, status email.Status, comment string) error
}

// Redeployer asks the hosting platform to rebuild the site.
type Redeployer interface {
	Trigger(ctx context.Context) error
}

// Deps groups the collaborators of a Processor.
type Deps struct {
	Catalog  Catalog
	Counts   CategoryCounter
	Cache    CacheInvalidator
	Pending  PendingStore
	Contacts ContactStore
	Tracker  Tracker
	Notifier Notifier
	Deploy   Redeployer
}

// GameSummary identifies the game an accepted issue described.
type GameSummary struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Outcome is the webhook response for a processed issue.
type Outcome struct {
	Message string       `json:"message"`
	Game    *GameSummary `json:"game,omitempty"`
}

// Processor handles closed suggestion issues.
type Processor struct {
	d Deps
}

// NewProcessor creates a Processor.
func NewProcessor(d Deps) *Processor {
	return &Processor{d: d}
}

// Process applies the close reason of a suggestion issue. The pending and
// contact rows for the issue are deleted when it returns, whatever the
// outcome. Store errors abort processing without undoing earlier writes.
func (p *Processor) Process(ctx context.Context, is *Issue) (*Outcome, error) {
	defer p.cleanup(context.WithoutCancel(ctx), is.Number)

	pending, err := p.d.Pending.FindByIssue(ctx, is.Number)
	if err != nil {
		return nil, fmt.Errorf("find pending suggestion: %w", err)
	}

	switch is.StateReason {
	case ReasonCompleted:
		return p.accept(ctx, is, pending)
	case ReasonNotPlanned:
		return p.reject(ctx, is, pending)
	default:
		slog.Info("closed suggestion has no actionable reason", "issue", is.Number, "reason", is.StateReason)
		return &Outcome{Message: MsgNoAction}, nil
	}
}

// candidate picks the game to publish: the stored pending game when there is
// one, otherwise the fields parsed from the issue body.
func candidate(is *Issue, pending *models.PendingSuggestion) (models.Game, bool) {
	if pending != nil {
		g := pending.GameData
		if g.Name != "" && g.URL != "" && g.Category != "" && g.Description != "" {
			return g, true
		}
	}
	fields := ParseIssueBody(is.Body)
	if !fields.Complete() || !models.IsCategory(fields.Category.Value) {
		return models.Game{}, false
	}
	return fields.Game(), true
}

func (p *Processor) accept(ctx context.Context, is *Issue, pending *models.PendingSuggestion) (*Outcome, error) {
	game, ok := candidate(is, pending)
	if !ok {
		slog.Warn("accepted suggestion is missing game fields", "issue", is.Number)
		return &Outcome{Message: MsgNoAction}, nil
	}

	added, err := p.d.Catalog.Add(ctx, &game)
	if err != nil {
		return nil, fmt.Errorf("add game %s: %w", game.ID, err)
	}
	if added {
		if err := p.d.Counts.Increment(ctx, game.Category); err != nil {
			return nil, fmt.Errorf("increment category count: %w", err)
		}
		p.d.Cache.InvalidateAll(ctx)
		slog.Info("game added to catalog", "issue", is.Number, "game", game.ID)
	} else {
		slog.Info("accepted game already in catalog", "issue", is.Number, "game", game.ID)
	}

	if pending != nil {
		if _, err := p.d.Pending.SetStatus(ctx, is.Number, models.SuggestionApproved, nil); err != nil {
			return nil, fmt.Errorf("mark suggestion approved: %w", err)
		}
	}

	if err := p.d.Deploy.Trigger(ctx); err != nil {
		slog.Error("trigger redeploy", "issue", is.Number, "error", err)
	}
	p.label(ctx, is.Number, LabelApproved)

	status := email.StatusAdded
	message := MsgAdded
	if !added {
		status = email.StatusUpdated
		message = MsgAlreadyExists
	}
	p.notify(ctx, is, pending, game.Name, status, "")

	return &Outcome{
		Message: message,
		Game:    &GameSummary{Name: game.Name, URL: game.URL, Category: game.Category},
	}, nil
}

func (p *Processor) reject(ctx context.Context, is *Issue, pending *models.PendingSuggestion) (*Outcome, error) {
	if !hasContact(is, pending) {
		slog.Info("rejected suggestion has no contact info", "issue", is.Number)
		return &Outcome{Message: MsgNoAction}, nil
	}

	comment := p.closingComment(ctx, is)
	if pending != nil {
		var c *string
		if comment != "" {
			c = &comment
		}
		if _, err := p.d.Pending.SetStatus(ctx, is.Number, models.SuggestionRejected, c); err != nil {
			return nil, fmt.Errorf("mark suggestion rejected: %w", err)
		}
	}
	p.label(ctx, is.Number, LabelRejected)

	name := ParseIssueBody(is.Body).Name.Value
	if pending != nil && pending.GameData.Name != "" {
		name = pending.GameData.Name
	}
	if !p.notify(ctx, is, pending, name, email.StatusRejected, comment) {
		return &Outcome{Message: MsgNoAction}, nil
	}
	return &Outcome{Message: MsgRejected}, nil
}

func hasContact(is *Issue, pending *models.PendingSuggestion) bool {
	return is.HasLabel(suggest.LabelHasContact) || (pending != nil && pending.ContactEmail != nil)
}

// closingComment returns the newest comment on the issue, or "" when there is
// none or it cannot be fetched.
func (p *Processor) closingComment(ctx context.Context, is *Issue) string {
	if is.Comments == 0 || !p.d.Tracker.Configured() {
		return ""
	}
	body, ok, err := p.d.Tracker.LatestComment(ctx, is.RepoOwner, is.RepoName, is.Number)
	if err != nil {
		slog.Error("fetch closing comment", "issue", is.Number, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return body
}

// contactAddress resolves the suggester's address: the pending record first,
// the legacy contacts row second.
func (p *Processor) contactAddress(ctx context.Context, is *Issue, pending *models.PendingSuggestion) string {
	if pending != nil && pending.ContactEmail != nil && *pending.ContactEmail != "" {
		return *pending.ContactEmail
	}
	if !is.HasLabel(suggest.LabelHasContact) {
		return ""
	}
	c, err := p.d.Contacts.Latest(ctx, is.Number)
	if err != nil {
		slog.Error("look up contact email", "issue", is.Number, "error", err)
		return ""
	}
	if c == nil {
		return ""
	}
	return c.Email
}

// notify emails the suggester and reports whether a message was sent. A
// pending record that was already processed means this delivery is a repeat,
// so nothing is sent.
func (p *Processor) notify(ctx context.Context, is *Issue, pending *models.PendingSuggestion, gameName string, status email.Status, comment string) bool {
	if pending != nil && pending.IsProcessed() {
		slog.Info("suggestion already processed, skipping notification", "issue", is.Number)
		return false
	}
	to := p.contactAddress(ctx, is, pending)
	if to == "" {
		slog.Info("no contact email for suggestion", "issue", is.Number)
		return false
	}
	if !p.d.Notifier.IsConfigured() {
		slog.Warn("email not configured, skipping notification", "issue", is.Number)
		return false
	}
	if err := p.d.Notifier.Notify(ctx, to, gameName, status, comment); err != nil {
		slog.Error("send notification", "issue", is.Number, "status", status, "error", err)
		return false
	}
	return true
}

func (p *Processor) label(ctx context.Context, number int, label string) {
	if !p.d.Tracker.Configured() {
		return
	}
	if err := p.d.Tracker.AddLabels(ctx, number, label); err != nil {
		slog.Error("label processed issue", "issue", number, "label", label, "error", err)
	}
}

func (p *Processor) cleanup(ctx context.Context, number int) {
	if _, err := p.d.Pending.DeleteByIssue(ctx, number); err != nil {
		slog.Error("delete pending suggestion", "issue", number, "error", err)
	}
	if _, err := p.d.Contacts.DeleteByIssue(ctx, number); err != nil {
		slog.Error("delete contact email", "issue", number, "error", err)
	}
}

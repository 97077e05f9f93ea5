// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package moderation

import (
	"errors"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v75/github"

	"dailygameshub/internal/suggest"
)

// Acknowledgement messages for deliveries that are not processed.
const (
	MsgIgnoredEvent  = "Ignored event"
	MsgNotClosed     = "Not a close event"
	MsgNotSuggestion = "Not a game suggestion issue"
)

// ErrBadSignature is returned when the delivery signature does not match.
var ErrBadSignature = errors.New("invalid signature")

// Close reasons reported in an issue's state_reason.
const (
	ReasonCompleted  = "completed"
	ReasonNotPlanned = "not_planned"
)

// Issue is the part of a closed issue the moderation flow acts on.
type Issue struct {
	Number      int
	Title       string
	Body        string
	StateReason string
	Comments    int
	Labels      []string
	RepoOwner   string
	RepoName    string
}

// HasLabel reports whether the issue carries name, compared case-insensitively.
func (i *Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

// VerifySignature checks the X-Hub-Signature-256 header against an
// HMAC-SHA256 of the raw payload, compared in constant time.
func VerifySignature(signature string, payload, secret []byte) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return ErrBadSignature
	}
	if err := gh.ValidateSignature(signature, payload, secret); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return nil
}

// Decode interprets a verified webhook delivery. It returns the closed
// suggestion issue to process, or a nil Issue and the acknowledgement message
// when the delivery is not one the moderation flow handles.
func Decode(eventType string, payload []byte) (*Issue, string, error) {
	if eventType != "issues" {
		return nil, MsgIgnoredEvent, nil
	}
	parsed, err := gh.ParseWebHook(eventType, payload)
	if err != nil {
		return nil, "", fmt.Errorf("parse webhook payload: %w", err)
	}
	ev, ok := parsed.(*gh.IssuesEvent)
	if !ok || ev.Issue == nil {
		return nil, MsgIgnoredEvent, nil
	}
	if ev.GetAction() != "closed" {
		return nil, MsgNotClosed, nil
	}
	if !strings.HasPrefix(ev.Issue.GetTitle(), suggest.TitlePrefix) {
		return nil, MsgNotSuggestion, nil
	}

	is := &Issue{
		Number:      ev.Issue.GetNumber(),
		Title:       ev.Issue.GetTitle(),
		Body:        ev.Issue.GetBody(),
		StateReason: strings.ToLower(ev.Issue.GetStateReason()),
		Comments:    ev.Issue.GetComments(),
		RepoOwner:   ev.GetRepo().GetOwner().GetLogin(),
		RepoName:    ev.GetRepo().GetName(),
	}
	for _, l := range ev.Issue.Labels {
		is.Labels = append(is.Labels, l.GetName())
	}
	return is, "", nil
}

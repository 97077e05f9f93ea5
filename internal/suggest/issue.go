// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package suggest

import (
	"fmt"
	"strings"

	"dailygameshub/internal/models"
)

// Issue conventions shared with the moderation webhook.
const (
	TitlePrefix     = "Game Suggestion:"
	LabelSuggestion = "game-suggestion"
	LabelHasContact = "has-contact-info"
	LabelUserReport = "user-report"
	reportFooter    = "*Submitted via Daily Games Hub*"
)

// IssueTitle returns the tracking issue title for a suggested game.
func IssueTitle(name string) string {
	return TitlePrefix + " " + name
}

// IssueBody renders the labeled-field body the moderation webhook parses.
func IssueBody(g models.Game) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "**Name:** %s\n", g.Name)
	fmt.Fprintf(&b, "**URL:** %s\n", g.URL)
	fmt.Fprintf(&b, "**Category:** %s\n", g.Category)
	fmt.Fprintf(&b, "**Tags:** %s\n", strings.Join(g.Tags, ", "))
	b.WriteString("\n")
	b.WriteString("**Description:**\n")
	b.WriteString(g.Description)
	b.WriteString("\n")
	return b.String()
}

// IssueLabels returns the labels for a suggestion issue.
func IssueLabels(hasContact bool) []string {
	if hasContact {
		return []string{LabelSuggestion, LabelHasContact}
	}
	return []string{LabelSuggestion}
}

// reportBody renders the body of a free-form issue report.
func reportBody(r Report) string {
	var b strings.Builder
	b.WriteString("\n## Issue Report\n\n")
	fmt.Fprintf(&b, "**Type:** %s\n", r.Type)
	if r.GameName != "" {
		fmt.Fprintf(&b, "**Game:** %s\n", r.GameName)
	}
	if r.GameURL != "" {
		fmt.Fprintf(&b, "**URL:** %s\n", r.GameURL)
	}
	b.WriteString("\n**Description:**\n")
	b.WriteString(r.Description)
	b.WriteString("\n\n---\n")
	b.WriteString(reportFooter)
	b.WriteString("\n")
	return b.String()
}

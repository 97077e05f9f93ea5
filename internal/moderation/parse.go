// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package moderation

import (
	"regexp"
	"strings"

	"dailygameshub/internal/models"
	"dailygameshub/internal/slug"
	"dailygameshub/internal/suggest"
)

var (
	nameField        = regexp.MustCompile(`\*\*Name:\*\* (.*?)(?:\n|$)`)
	urlField         = regexp.MustCompile(`\*\*URL:\*\* (.*?)(?:\n|$)`)
	categoryField    = regexp.MustCompile(`\*\*Category:\*\* (.*?)(?:\n|$)`)
	tagsField        = regexp.MustCompile(`\*\*Tags:\*\* (.*?)(?:\n|$)`)
	descriptionField = regexp.MustCompile(`(?s)\*\*Description:\*\*\n(.*?)(?:\n\n|$)`)
)

// Field is one labeled value extracted from an issue body.
type Field struct {
	Value   string
	Present bool
}

// IssueFields holds the values parsed from a suggestion issue body. Fields
// whose label is absent have Present set to false.
type IssueFields struct {
	Name        Field
	URL         Field
	Category    Field
	Description Field
	Tags        []string
}

func extract(re *regexp.Regexp, body string) Field {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return Field{}
	}
	return Field{Value: strings.TrimSpace(m[1]), Present: true}
}

// ParseIssueBody extracts the labeled fields written by suggest.IssueBody.
// Category is reduced to its first space-separated word, lowercased. Tags are
// comma split, lowercased, and filtered against the category.
func ParseIssueBody(body string) IssueFields {
	f := IssueFields{
		Name:        extract(nameField, body),
		URL:         extract(urlField, body),
		Category:    extract(categoryField, body),
		Description: extract(descriptionField, body),
	}
	if f.Category.Present {
		f.Category.Value = strings.ToLower(f.Category.Value)
		if word, _, ok := strings.Cut(f.Category.Value, " "); ok {
			f.Category.Value = word
		}
	}

	if tags := extract(tagsField, body); tags.Present {
		for _, tag := range strings.Split(tags.Value, ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" || tag == f.Category.Value {
				continue
			}
			f.Tags = append(f.Tags, tag)
		}
	}
	return f
}

// Complete reports whether every field the catalog requires is non-empty.
func (f IssueFields) Complete() bool {
	return f.Name.Value != "" && f.URL.Value != "" && f.Category.Value != "" && f.Description.Value != ""
}

// Game builds the catalog entry the parsed fields describe, normalized the
// same way submitted suggestions are.
func (f IssueFields) Game() models.Game {
	return models.Game{
		ID:          slug.Generate(f.Name.Value),
		Name:        f.Name.Value,
		Description: suggest.Capitalize(suggest.Truncate(f.Description.Value, suggest.MaxDescriptionLength)),
		URL:         f.URL.Value,
		Category:    f.Category.Value,
		Tags:        suggest.NormalizeTags(f.Tags, f.Category.Value),
		Popularity:  1,
	}
}

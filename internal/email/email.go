// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package email sends suggestion outcome notifications through the Resend
// HTTP API. Message bodies come from embedded templates, each defining a
// subject, plainBody and htmlBody block.
package email

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	texttemplate "text/template"
	"time"

	"dailygameshub/internal/markdown"
)

//go:embed templates
var templateFS embed.FS

// DefaultEndpoint is the Resend send-email API.
const DefaultEndpoint = "https://api.resend.com/emails"

// ErrNotConfigured is returned by Notify when no API key is set.
var ErrNotConfigured = errors.New("email not configured")

// Status is the outcome a notification reports.
type Status string

const (
	StatusAdded    Status = "added"
	StatusUpdated  Status = "updated"
	StatusRejected Status = "rejected"
)

// Config holds the notifier settings.
type Config struct {
	APIKey   string
	From     string
	SiteURL  string
	Endpoint string // defaults to DefaultEndpoint
}

// Notifier sends outcome emails to suggesters.
type Notifier struct {
	config Config
	client *http.Client
}

// New creates a Notifier.
func New(cfg Config) *Notifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Notifier{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured returns true if an API key is set.
func (n *Notifier) IsConfigured() bool {
	return n.config.APIKey != ""
}

// templateData is passed to every template.
type templateData struct {
	GameName    string
	SiteURL     string
	Comment     string
	CommentHTML template.HTML
}

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Render builds the message for status. comment is moderator Markdown and
// only appears in rejected messages.
func (n *Notifier) Render(gameName string, status Status, comment string) (*Message, error) {
	var file string
	switch status {
	case StatusAdded, StatusUpdated, StatusRejected:
		file = string(status) + ".tmpl"
	default:
		return nil, fmt.Errorf("unknown notification status %q", status)
	}

	data := templateData{
		GameName: gameName,
		SiteURL:  n.config.SiteURL,
		Comment:  strings.TrimSpace(comment),
	}
	if data.Comment != "" {
		out, err := markdown.InlineHTML(data.Comment)
		if err != nil {
			return nil, fmt.Errorf("render comment: %w", err)
		}
		// goldmark escapes raw HTML in the source, so the output is safe
		// to embed as-is.
		data.CommentHTML = template.HTML(out)
	}

	// The subject and plain body are not HTML and must not be escaped.
	textTmpl, err := texttemplate.New("email").ParseFS(templateFS, "templates/"+file)
	if err != nil {
		return nil, fmt.Errorf("parse text template %s: %w", file, err)
	}
	htmlTmpl, err := template.New("email").ParseFS(templateFS, "templates/"+file)
	if err != nil {
		return nil, fmt.Errorf("parse html template %s: %w", file, err)
	}

	var subject, plain, html bytes.Buffer
	if err := textTmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	if err := textTmpl.ExecuteTemplate(&plain, "plainBody", data); err != nil {
		return nil, fmt.Errorf("render plain body: %w", err)
	}
	if err := htmlTmpl.ExecuteTemplate(&html, "htmlBody", data); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	return &Message{
		Subject: strings.TrimSpace(subject.String()),
		Text:    strings.TrimSpace(plain.String()),
		HTML:    strings.TrimSpace(html.String()),
	}, nil
}

// sendRequest is the Resend API request body.
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// Notify emails the outcome of a suggestion to one address. It makes a single
// attempt; callers log failures and carry on.
func (n *Notifier) Notify(ctx context.Context, to, gameName string, status Status, comment string) error {
	if !n.IsConfigured() {
		return ErrNotConfigured
	}

	msg, err := n.Render(gameName, status, comment)
	if err != nil {
		return err
	}

	body, err := json.Marshal(sendRequest{
		From:    n.config.From,
		To:      []string{to},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.config.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	slog.Info("notification sent", "status", status, "game", gameName)
	return nil
}

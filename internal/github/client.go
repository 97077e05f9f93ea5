// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package github wraps the GitHub issues API used by the suggestion and
// moderation workflow. Every call waits on a shared rate limiter.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"golang.org/x/time/rate"
)

// NewLimiter returns a rate limiter tuned for authenticated or
// unauthenticated GitHub API usage.
func NewLimiter(authenticated bool) *rate.Limiter {
	if authenticated {
		return rate.NewLimiter(rate.Every(time.Hour/5000), 10)
	}
	return rate.NewLimiter(rate.Every(time.Hour/60), 1)
}

// Issue is the reference returned for a created issue.
type Issue struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// NewIssue describes an issue to create.
type NewIssue struct {
	Title  string
	Body   string
	Labels []string
}

// Client talks to one repository's issue tracker.
type Client struct {
	c     *github.Client
	l     *rate.Limiter
	owner string
	repo  string
	token string
}

type clientOptions struct {
	token      string
	limiter    *rate.Limiter
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

// WithToken sets the personal access token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(o *clientOptions) { o.token = token }
}

// WithLimiter sets the rate limiter used for API calls.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(o *clientOptions) { o.limiter = l }
}

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(u string) ClientOption {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) { o.httpClient = hc }
}

// NewClient constructs a Client for owner/repo.
func NewClient(owner, repo string, opts ...ClientOption) (*Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if o.limiter == nil {
		o.limiter = NewLimiter(o.token != "")
	}

	gc := github.NewClient(o.httpClient)
	if o.token != "" {
		gc = gc.WithAuthToken(o.token)
	} else {
		slog.Warn("github client has no token, issue creation is disabled")
	}
	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("github base url: %w", err)
		}
		gc.BaseURL = u
	}

	return &Client{c: gc, l: o.limiter, owner: owner, repo: repo, token: o.token}, nil
}

// Configured reports whether the client carries credentials.
func (c *Client) Configured() bool {
	return c.token != ""
}

// Repo returns the owner/repo the client targets.
func (c *Client) Repo() string {
	return c.owner + "/" + c.repo
}

// CreateIssue opens an issue and returns its number and web URL.
func (c *Client) CreateIssue(ctx context.Context, in NewIssue) (*Issue, error) {
	if err := c.l.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}
	req := &github.IssueRequest{
		Title: github.Ptr(in.Title),
		Body:  github.Ptr(in.Body),
	}
	if len(in.Labels) > 0 {
		labels := in.Labels
		req.Labels = &labels
	}
	issue, _, err := c.c.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return &Issue{Number: issue.GetNumber(), URL: issue.GetHTMLURL()}, nil
}

// LatestComment returns the body of the newest comment on an issue. The
// second result is false when the issue has no comments.
func (c *Client) LatestComment(ctx context.Context, owner, repo string, number int) (string, bool, error) {
	if owner == "" || repo == "" {
		owner, repo = c.owner, c.repo
	}
	if err := c.l.Wait(ctx); err != nil {
		return "", false, fmt.Errorf("rate limiter wait: %w", err)
	}
	comments, _, err := c.c.Issues.ListComments(ctx, owner, repo, number, &github.IssueListCommentsOptions{
		Sort:        github.Ptr("created"),
		Direction:   github.Ptr("desc"),
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return "", false, fmt.Errorf("list comments for issue %d: %w", number, err)
	}
	if len(comments) == 0 {
		return "", false, nil
	}
	return comments[0].GetBody(), true, nil
}

// AddLabels attaches labels to an existing issue in the configured repository.
func (c *Client) AddLabels(ctx context.Context, number int, labels ...string) error {
	if len(labels) == 0 {
		return nil
	}
	if err := c.l.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	if _, _, err := c.c.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, labels); err != nil {
		return fmt.Errorf("add labels to issue %d: %w", number, err)
	}
	return nil
}

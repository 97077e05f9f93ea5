// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"dailygameshub/internal/suggest"
)

// Suggestions serves public intake: suggestions, the existence check and
// issue reports.
type Suggestions struct {
	svc *suggest.Service
}

// NewSuggestions creates a Suggestions handler group.
func NewSuggestions(svc *suggest.Service) *Suggestions {
	return &Suggestions{svc: svc}
}

type issueResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	IssueNumber int    `json:"issueNumber"`
	IssueURL    string `json:"issueUrl"`
}

// Suggest submits a game suggestion for moderation.
func (h *Suggestions) Suggest(w http.ResponseWriter, r *http.Request) {
	var in suggest.Suggestion
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err, "")
		return
	}

	res, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to process game suggestion")
		return
	}
	writeJSON(w, http.StatusOK, issueResponse{
		Success:     true,
		Message:     "Game suggestion submitted successfully",
		IssueNumber: res.IssueNumber,
		IssueURL:    res.IssueURL,
	})
}

// CheckExists reports whether a game name or URL is already listed or
// pending.
func (h *Suggestions) CheckExists(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}

	res, err := h.svc.CheckGameExists(r.Context(), req.Name, req.URL)
	if err != nil {
		writeError(w, r, err, "Failed to check if game exists")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Report files a free-form issue report.
func (h *Suggestions) Report(w http.ResponseWriter, r *http.Request) {
	var in suggest.Report
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err, "")
		return
	}

	issue, err := h.svc.ReportIssue(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to process issue report")
		return
	}
	writeJSON(w, http.StatusOK, issueResponse{
		Success:     true,
		Message:     "Issue reported successfully",
		IssueNumber: issue.Number,
		IssueURL:    issue.URL,
	})
}

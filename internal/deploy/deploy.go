// Package deploy triggers the hosting provider's redeploy hook after the
// catalog changes.
package deploy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Hook posts to a redeploy URL. A Hook with an empty URL is disabled.
type Hook struct {
	url    string
	client *http.Client
}

// NewHook returns a Hook for url.
func NewHook(url string) *Hook {
	return &Hook{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

// Enabled reports whether a hook URL is configured.
func (h *Hook) Enabled() bool {
	return h != nil && h.url != ""
}

// Trigger requests a redeploy. It is a no-op when the hook is disabled.
func (h *Hook) Trigger(ctx context.Context) error {
	if !h.Enabled() {
		slog.Debug("redeploy hook not configured, skipping")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, nil)
	if err != nil {
		return fmt.Errorf("create redeploy request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("trigger redeploy: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("redeploy hook returned %d", resp.StatusCode)
	}
	slog.Info("redeploy triggered")
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search talks to the arXiv API: it builds the query URL, fetches
// the Atom response and parses it into Paper records.
package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Fetcher performs the single arXiv API request of a run.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFetcher returns a Fetcher whose client is bounded by cfg.Timeout
// (default 30s) and which identifies itself with cfg.UserAgent.
func NewFetcher(cfg types.HTTPConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = types.DefaultUserAgent
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: ua,
	}
}

// Fetch GETs url once and returns the response body as text. Transport
// errors, timeouts and non-2xx statuses are returned; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: types.DefaultTimeout}
	}

	body, err := httputil.GetText(ctx, client, url, f.UserAgent)
	if err != nil {
		return "", fmt.Errorf("arXiv API request: %w", err)
	}
	return body, nil
}

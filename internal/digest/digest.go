// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest runs the arxiv-digest pipeline end to end: build the query,
// fetch and parse the feed, render the page and replace the output file.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/render"
	"github.com/pdiddy/arxiv-digest/internal/search"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Result summarizes a successful run.
type Result struct {
	URL        string
	Papers     int
	OutputPath string
}

// Run executes one pipeline pass. now is the time reported as "last
// updated". Any error is returned before the output file is touched, so
// the previously published page survives a failed run.
func Run(ctx context.Context, cfg types.DigestConfig, fetcher *search.Fetcher, now time.Time, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return Result{}, fmt.Errorf("reading template: %w", err)
	}

	if len(cfg.Keywords) == 0 {
		logger.Warn("no keywords configured, query will match nothing useful")
	}
	url := search.BuildQueryURL(cfg.Keywords, cfg.MaxResults)
	logger.Info("fetching arXiv feed", "url", url)

	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return Result{}, err
	}
	if !search.LooksLikeAtom(body) {
		logger.Warn("response does not look like an Atom feed", "bytes", len(body))
	}

	papers, err := search.ParseFeed(body)
	if err != nil {
		return Result{}, err
	}
	logger.Info("parsed feed", "papers", len(papers))

	page, err := render.RenderPage(string(tmpl), papers,
		render.LastUpdated(now), render.QueryDescription(cfg.Keywords))
	if err != nil {
		return Result{}, fmt.Errorf("rendering page: %w", err)
	}

	if err := WriteFileAtomic(cfg.OutputPath, []byte(page)); err != nil {
		return Result{}, err
	}
	logger.Info("wrote page", "path", cfg.OutputPath, "papers", len(papers))

	return Result{URL: url, Papers: len(papers), OutputPath: cfg.OutputPath}, nil
}

// WriteFileAtomic replaces path with data. The data is written to a
// temporary file in the same directory and renamed over path, so readers
// see either the old page or the new one, never a partial write.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI. Running the
// binary with no arguments fetches the latest matching arXiv papers and
// rewrites the static HTML page; it is meant to be invoked by a scheduler.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/search"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd fetches, renders and writes the page.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Render the latest arXiv papers for a keyword list into a static page",
	Long: `arxiv-digest queries the arXiv API for recent papers whose title or abstract
matches any configured keyword, then renders them into arxiv.html using the
placeholders in arxiv_template.html.

Keywords, the result cap and file locations come from arxiv-digest.yaml in the
working directory when present; otherwise built-in defaults apply. A failed
run exits non-zero and leaves the previous page untouched.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runDigest,
}

// loadConfig resolves the configuration against the working directory.
func loadConfig() (types.DigestConfig, error) {
	root, err := os.Getwd()
	if err != nil {
		return types.DigestConfig{}, fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, used, err := config.Load(root)
	if err != nil {
		return types.DigestConfig{}, err
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return cfg, nil
}

func runDigest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("run_id", uuid.NewString())

	res, err := digest.Run(cmd.Context(), cfg, search.NewFetcher(cfg.HTTPConfig), time.Now(), logger)
	if err != nil {
		logger.Error("digest failed", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d papers to %s\n", res.Papers, res.OutputPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the digest configuration: built-in defaults,
// optionally overridden by arxiv-digest.yaml in the root directory.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// FileName is the config file name (without extension) looked up in the root.
const FileName = "arxiv-digest"

// Load returns the configuration for root. A missing config file is not an
// error. Relative template and output paths are resolved against root. The
// second return value is the config file used, or "" when none was found.
func Load(root string) (types.DigestConfig, string, error) {
	def := types.DefaultDigestConfig()

	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	v.SetDefault("keywords", def.Keywords)
	v.SetDefault("max_results", def.MaxResults)
	v.SetDefault("template_path", def.TemplatePath)
	v.SetDefault("output_path", def.OutputPath)
	v.SetDefault("http.timeout", def.Timeout)
	v.SetDefault("http.user_agent", def.UserAgent)

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.DigestConfig{}, "", fmt.Errorf("reading config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg types.DigestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.DigestConfig{}, "", fmt.Errorf("decoding config: %w", err)
	}

	if cfg.MaxResults <= 0 {
		return types.DigestConfig{}, "", fmt.Errorf("max_results must be positive, got %d", cfg.MaxResults)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = types.DefaultTimeout
	}

	cfg.TemplatePath = resolve(root, cfg.TemplatePath)
	cfg.OutputPath = resolve(root, cfg.OutputPath)
	return cfg, used, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

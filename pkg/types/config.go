// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

const (
	// DefaultMaxResults is the number of entries requested when MaxResults is unset.
	DefaultMaxResults = 20

	// DefaultTimeout bounds the single arXiv API request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the fetcher to the arXiv API.
	DefaultUserAgent = "arxiv-digest/0.1 (+https://github.com/pdiddy/arxiv-digest)"

	// DefaultTemplatePath and DefaultOutputPath are resolved against the root directory.
	DefaultTemplatePath = "arxiv_template.html"
	DefaultOutputPath   = "arxiv.html"
)

// HTTPConfig holds HTTP settings for the feed fetcher.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with the request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// DigestConfig holds everything a pipeline run needs.
type DigestConfig struct {
	HTTPConfig `yaml:"http" mapstructure:"http"`

	// Keywords are matched against titles and abstracts; any match qualifies.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// MaxResults caps the number of entries requested from the API (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// TemplatePath is the HTML template containing the placeholder tokens.
	TemplatePath string `json:"template_path" yaml:"template_path" mapstructure:"template_path"`

	// OutputPath is the generated page, overwritten on every successful run.
	OutputPath string `json:"output_path" yaml:"output_path" mapstructure:"output_path"`
}

// DefaultDigestConfig returns the built-in configuration used when no config
// file overrides it.
func DefaultDigestConfig() DigestConfig {
	return DigestConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Keywords:     []string{"statistics", "causal+inference", "machine+learning"},
		MaxResults:   DefaultMaxResults,
		TemplatePath: DefaultTemplatePath,
		OutputPath:   DefaultOutputPath,
	}
}

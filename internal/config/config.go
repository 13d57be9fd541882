// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, optional YAML file, and environment variables.
// - External errors are wrapped via this package's error sentinels.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BaseURL is the host relative event URLs are resolved against.
	BaseURL string `koanf:"base_url"`

	// DataDir is the directory served under /data/ and the default home of
	// the feed files.
	DataDir string `koanf:"data_dir"`

	// Sources lists the feed sources: file paths or http(s) URLs.
	Sources []string `koanf:"sources"`

	// Keywords select events when fetching from the upstream API.
	Keywords []string `koanf:"keywords"`

	// APIEndpoint is the upstream events API used by the fetch tool.
	APIEndpoint string `koanf:"api_endpoint"`

	// RefreshMinutes enables periodic feed reloads; 0 disables them.
	RefreshMinutes int `koanf:"refresh_minutes"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":8080",
		BaseURL:     "https://amiv.ethz.ch",
		DataDir:     "data",
		Sources:     []string{"data/apero_results_amiv.json"},
		Keywords:    []string{"apero", "food", "essen"},
		APIEndpoint: "https://api.amiv.ethz.ch/events/",
	}
}

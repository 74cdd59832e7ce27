// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults for the research pipeline knobs.
const (
	DefaultAcceptThreshold    = 0.5
	DefaultFallbackThreshold  = 0.6
	DefaultSearchTimeoutSecs  = 10
	DefaultMaxQueryVariants   = 3
	DefaultMaxResultsPerQuery = 5
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Credentials
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`   // Gemini API key for verification and query interpretation
	GoogleAPIKey   string `json:"google_api_key,omitempty"`   // Google Custom Search API key
	GoogleSearchCX string `json:"google_search_cx,omitempty"` // Google Custom Search engine ID
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL connection URL

	// Research knobs
	AcceptThreshold    float64 `json:"accept_threshold,omitempty"`      // Quality gate for persisting research results (0.0-1.0)
	FallbackThreshold  float64 `json:"fallback_threshold,omitempty"`    // Acceptance cutoff for lexical verification (0.0-1.0)
	SearchTimeoutSecs  int     `json:"search_timeout_secs,omitempty"`   // Per-call search timeout in seconds
	MaxQueryVariants   int     `json:"max_query_variants,omitempty"`    // Query variants generated per name (2-4)
	MaxResultsPerQuery int     `json:"max_results_per_query,omitempty"` // Search results kept per variant

	// Behavior
	SearchEngine string `json:"search_engine,omitempty"` // "google" or "duckduckgo" (default: duckduckgo, google when keyed)
	FetchPages   bool   `json:"fetch_pages,omitempty"`   // Fetch result pages for extra facts
	UseBrowser   bool   `json:"use_browser,omitempty"`   // Use headless browser for JS-rendered pages
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills credentials from environment variables for any field not
// already set. Called after LoadConfig so file values win.
func (c *Config) FromEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.GoogleAPIKey == "" {
		c.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if c.GoogleSearchCX == "" {
		c.GoogleSearchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.AcceptThreshold < 0 || c.AcceptThreshold > 1 {
		return fmt.Errorf("config error: 'accept_threshold' must be between 0 and 1")
	}
	if c.FallbackThreshold < 0 || c.FallbackThreshold > 1 {
		return fmt.Errorf("config error: 'fallback_threshold' must be between 0 and 1")
	}
	if c.SearchTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'search_timeout_secs' must be non-negative")
	}
	if c.MaxQueryVariants != 0 && (c.MaxQueryVariants < 2 || c.MaxQueryVariants > 4) {
		return fmt.Errorf("config error: 'max_query_variants' must be between 2 and 4")
	}
	if c.MaxResultsPerQuery < 0 {
		return fmt.Errorf("config error: 'max_results_per_query' must be non-negative")
	}
	if c.SearchEngine != "" && c.SearchEngine != "google" && c.SearchEngine != "duckduckgo" {
		return fmt.Errorf("config error: 'search_engine' must be \"google\" or \"duckduckgo\"")
	}
	if c.SearchEngine == "google" && (c.GoogleAPIKey == "" || c.GoogleSearchCX == "") {
		return fmt.Errorf("config error: search engine \"google\" requires 'google_api_key' and 'google_search_cx'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GoogleAPIKey == "" {
		result.GoogleAPIKey = defaults.GoogleAPIKey
	}
	if result.GoogleSearchCX == "" {
		result.GoogleSearchCX = defaults.GoogleSearchCX
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SearchEngine == "" {
		result.SearchEngine = defaults.SearchEngine
	}

	// Numeric fields: zero means unset, fall back to the pipeline defaults
	if result.AcceptThreshold == 0 {
		result.AcceptThreshold = nonZeroFloat(defaults.AcceptThreshold, DefaultAcceptThreshold)
	}
	if result.FallbackThreshold == 0 {
		result.FallbackThreshold = nonZeroFloat(defaults.FallbackThreshold, DefaultFallbackThreshold)
	}
	if result.SearchTimeoutSecs == 0 {
		result.SearchTimeoutSecs = nonZeroInt(defaults.SearchTimeoutSecs, DefaultSearchTimeoutSecs)
	}
	if result.MaxQueryVariants == 0 {
		result.MaxQueryVariants = nonZeroInt(defaults.MaxQueryVariants, DefaultMaxQueryVariants)
	}
	if result.MaxResultsPerQuery == 0 {
		result.MaxResultsPerQuery = nonZeroInt(defaults.MaxResultsPerQuery, DefaultMaxResultsPerQuery)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func nonZeroFloat(value, fallback float64) float64 {
	if value > 0 {
		return value
	}
	return fallback
}

func nonZeroInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

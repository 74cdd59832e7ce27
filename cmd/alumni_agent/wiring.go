package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/alumni-research/internal/collect"
	"github.com/jonathan/alumni-research/internal/config"
	"github.com/jonathan/alumni-research/internal/db"
	"github.com/jonathan/alumni-research/internal/llm"
	"github.com/jonathan/alumni-research/internal/research"
	"github.com/jonathan/alumni-research/internal/search"
	"github.com/jonathan/alumni-research/internal/verify"
)

// resolveConfig loads the optional config file, fills credentials from the
// environment and applies pipeline defaults. Flag values already parsed into
// cfg win over the file.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	base := config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		base = *loaded
	}

	cfg := flags.MergeWithDefaults(base)
	// MergeWithDefaults skips bools (flags win); file-enabled behavior
	// still applies when the flag was left off.
	cfg.FetchPages = cfg.FetchPages || base.FetchPages
	cfg.UseBrowser = cfg.UseBrowser || base.UseBrowser
	cfg.Verbose = cfg.Verbose || base.Verbose
	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openDatabase connects to PostgreSQL using the configured URL.
func openDatabase(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or 'database_url' in the config file)")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

// newSearchClient picks the search engine: Google Custom Search when keyed
// or explicitly requested, the keyless DuckDuckGo scraper otherwise.
func newSearchClient(ctx context.Context, cfg config.Config) (search.Client, error) {
	opts := &search.Options{
		MaxResults: cfg.MaxResultsPerQuery,
		Timeout:    time.Duration(cfg.SearchTimeoutSecs) * time.Second,
		Limiter:    search.NewHostLimiter(1, 2),
	}

	engine := cfg.SearchEngine
	if engine == "" {
		engine = "duckduckgo"
		if cfg.GoogleAPIKey != "" && cfg.GoogleSearchCX != "" {
			engine = "google"
		}
	}

	if engine == "google" {
		return search.NewGoogleClient(ctx, cfg.GoogleAPIKey, cfg.GoogleSearchCX, opts)
	}
	return search.NewDuckDuckGoClient(opts), nil
}

// newLLMClient creates the Gemini client when a key is configured. A nil
// client is valid: verification falls back to lexical matching.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newManager wires the full research pipeline over the database.
func newManager(ctx context.Context, cfg config.Config, database *db.DB) (*collect.Manager, func(), error) {
	searcher, err := newSearchClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	llmClient, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if llmClient != nil {
			_ = llmClient.Close()
		}
	}

	verifier := verify.New(llmClient, verify.Options{
		FallbackThreshold: cfg.FallbackThreshold,
		Verbose:           cfg.Verbose,
	})
	orchestrator := research.NewOrchestrator(searcher, verifier, research.Options{
		AcceptThreshold:  cfg.AcceptThreshold,
		MaxQueryVariants: cfg.MaxQueryVariants,
		FetchPages:       cfg.FetchPages,
		UseBrowser:       cfg.UseBrowser,
		Verbose:          cfg.Verbose,
	})

	return collect.NewManager(database, database, orchestrator, cfg.Verbose), cleanup, nil
}

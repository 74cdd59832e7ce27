// Package search provides web search clients for person research. Two
// engines are supported: Google Custom Search (API-keyed) and DuckDuckGo
// HTML scraping (keyless fallback). Both cap results and carry a fixed
// per-call timeout; a timed-out or unavailable engine is a local failure
// the orchestrator treats as zero results for that query variant.
package search

import (
	"context"
	"time"
)

// DefaultMaxResults caps the number of results returned per query.
const DefaultMaxResults = 5

// DefaultTimeout is the per-call search timeout.
const DefaultTimeout = 10 * time.Second

// Result is one search engine hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// Client issues search-engine queries.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Options configures search behavior shared by all engines.
type Options struct {
	MaxResults int
	Timeout    time.Duration
	Limiter    *HostLimiter
}

// DefaultSearchOptions returns the default search configuration.
func DefaultSearchOptions() *Options {
	return &Options{
		MaxResults: DefaultMaxResults,
		Timeout:    DefaultTimeout,
	}
}

func (o *Options) maxResults() int {
	if o == nil || o.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return o.MaxResults
}

func (o *Options) timeout() time.Duration {
	if o == nil || o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

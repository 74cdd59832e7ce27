package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleClient issues queries through the Google Custom Search API.
type GoogleClient struct {
	svc  *customsearch.Service
	cx   string
	opts *Options
}

// NewGoogleClient creates a Custom Search-backed client.
func NewGoogleClient(ctx context.Context, apiKey, cx string, opts *Options) (*GoogleClient, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("API key and search engine ID are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	if opts == nil {
		opts = DefaultSearchOptions()
	}
	return &GoogleClient{svc: svc, cx: cx, opts: opts}, nil
}

// Search runs one query and returns up to MaxResults hits.
func (c *GoogleClient) Search(ctx context.Context, query string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.timeout())
	defer cancel()

	if err := c.opts.Limiter.WaitURL(ctx, "https://www.googleapis.com/"); err != nil {
		return nil, classifyError(query, err)
	}

	resp, err := c.svc.Cse.List().
		Cx(c.cx).
		Q(query).
		Num(int64(c.opts.maxResults())).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyError(query, err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Link == "" {
			continue
		}
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  "Google",
		})
		if len(results) >= c.opts.maxResults() {
			break
		}
	}
	return results, nil
}

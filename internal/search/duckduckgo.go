package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const duckDuckGoEndpoint = "https://duckduckgo.com/html/"

// DuckDuckGoClient scrapes the DuckDuckGo HTML endpoint. It needs no API
// key, which makes it the default engine when no Google credentials are
// configured.
type DuckDuckGoClient struct {
	httpClient *http.Client
	opts       *Options
	userAgent  string
}

// NewDuckDuckGoClient creates a DuckDuckGo HTML scraping client.
func NewDuckDuckGoClient(opts *Options) *DuckDuckGoClient {
	if opts == nil {
		opts = DefaultSearchOptions()
	}
	return &DuckDuckGoClient{
		httpClient: &http.Client{Timeout: opts.timeout()},
		opts:       opts,
		userAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	}
}

// Search runs one query and returns up to MaxResults hits. Non-200 responses
// and unrecognizable markup yield an empty list, not an error.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.timeout())
	defer cancel()

	if err := c.opts.Limiter.WaitURL(ctx, duckDuckGoEndpoint); err != nil {
		return nil, classifyError(query, err)
	}

	reqURL := duckDuckGoEndpoint + "?" + url.Values{"q": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, &UnavailableError{Query: query, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyError(query, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Blocked or rate-limited; treat as no results rather than failing
		return []Result{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return []Result{}, nil
	}

	return c.parseResults(doc), nil
}

// parseResults extracts hits from a DuckDuckGo HTML results page.
func (c *DuckDuckGoClient) parseResults(doc *goquery.Document) []Result {
	var results []Result

	doc.Find("div.result").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		titleElem := div.Find("a.result__a").First()
		if titleElem.Length() == 0 {
			return true
		}

		href, _ := titleElem.Attr("href")
		link := unwrapRedirect(href)
		if link == "" {
			return true
		}

		results = append(results, Result{
			Title:   strings.TrimSpace(titleElem.Text()),
			URL:     link,
			Snippet: strings.TrimSpace(div.Find("a.result__snippet").First().Text()),
			Source:  "DuckDuckGo",
		})
		return len(results) < c.opts.maxResults()
	})

	return results
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= redirect links to the
// destination URL.
func unwrapRedirect(href string) string {
	if href == "" {
		return ""
	}
	if !strings.Contains(href, "uddg=") {
		return href
	}

	raw := href
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

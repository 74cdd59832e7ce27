package extract

import (
	"context"
	"log"

	"github.com/jonathan/alumni-research/internal/fetch"
	"github.com/jonathan/alumni-research/internal/search"
	"github.com/jonathan/alumni-research/internal/types"
)

// maxPageTextLen caps how much page text is scanned for facts.
const maxPageTextLen = 20000

// FromPage fetches a result URL and extracts facts from the page body.
// With useBrowser set, pages whose static fetch comes back too thin get a
// headless-browser retry. Fetch failures are silent: an unreachable or
// blocked page contributes zero facts.
func FromPage(ctx context.Context, r search.Result, useBrowser, verbose bool) []types.CandidateFact {
	res, err := fetch.URL(ctx, r.URL, nil)
	if err != nil || res == nil {
		if verbose {
			log.Printf("[EXTRACT] Page fetch failed for %s: %v", r.URL, err)
		}
		return nil
	}

	text, err := fetch.ExtractMainText(res.HTML, fetch.ProfilePageSelectors())
	if err != nil {
		return nil
	}

	if shouldRetryWithBrowser(useBrowser, text) {
		html, berr := fetch.BrowserSimple(ctx, r.URL, verbose)
		if berr == nil {
			if btext, terr := fetch.ExtractMainText(html, fetch.ProfilePageSelectors()); terr == nil && len(btext) > len(text) {
				text = btext
			}
		} else if verbose {
			log.Printf("[EXTRACT] Browser fetch failed for %s: %v", r.URL, berr)
		}
	}

	if len(text) > maxPageTextLen {
		text = text[:maxPageTextLen]
	}
	if text == "" {
		return nil
	}

	// Reuse the snippet heuristics over the page text, attributing facts
	// to the page URL with the page title as context.
	pageResult := search.Result{
		Title:   fetch.PageTitle(res.HTML),
		URL:     r.URL,
		Snippet: text,
		Source:  r.Source,
	}
	facts := fromResult(pageResult)

	// Page text is too long to carry around as provenance; keep a short
	// excerpt so the verifier prompt stays bounded.
	for i := range facts {
		if len(facts[i].RawSnippet) > 300 {
			facts[i].RawSnippet = facts[i].RawSnippet[:300]
		}
	}
	return facts
}

// shouldRetryWithBrowser decides whether a thin static fetch earns a
// browser launch. Never without the flag: a Chrome-less host must not pay
// a failed launch attempt per thin page.
func shouldRetryWithBrowser(useBrowser bool, text string) bool {
	return useBrowser && fetch.ShouldUseBrowser(text)
}

// Package research drives the per-name research loop: multi-variant web
// search, fact extraction, identity verification and the quality gate that
// decides whether a profile is worth persisting.
package research

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/alumni-research/internal/extract"
	"github.com/jonathan/alumni-research/internal/search"
	"github.com/jonathan/alumni-research/internal/types"
	"github.com/jonathan/alumni-research/internal/verify"
)

// DefaultAcceptThreshold is the quality gate: research below this score is
// rejected rather than persisted.
const DefaultAcceptThreshold = 0.5

// State identifies where a name is in its research pipeline.
type State string

// Pipeline states, in order. Accepted and Rejected are terminal.
const (
	StatePending    State = "pending"
	StateSearching  State = "searching"
	StateExtracting State = "extracting"
	StateVerifying  State = "verifying"
	StateAccepted   State = "accepted"
	StateRejected   State = "rejected"
)

// Outcome is the terminal result of researching one name.
type Outcome struct {
	Name     string
	State    State
	Profile  *types.Profile
	Result   types.VerificationResult
	Reason   string
	Searched int // search results gathered across all variants
}

// Options tunes the orchestrator.
type Options struct {
	AcceptThreshold  float64
	MaxQueryVariants int
	FetchPages       bool
	UseBrowser       bool
	Verbose          bool
}

// Orchestrator runs the research pipeline for single names.
type Orchestrator struct {
	searcher search.Client
	verifier *verify.Verifier
	opts     Options
}

// NewOrchestrator creates an orchestrator over a search engine and verifier.
func NewOrchestrator(searcher search.Client, verifier *verify.Verifier, opts Options) *Orchestrator {
	if opts.AcceptThreshold <= 0 {
		opts.AcceptThreshold = DefaultAcceptThreshold
	}
	return &Orchestrator{searcher: searcher, verifier: verifier, opts: opts}
}

// ResearchName runs one name through search, extraction and verification.
// It never returns an error: anything unexpected becomes a Rejected outcome
// so one name's failure cannot abort a batch.
func (o *Orchestrator) ResearchName(ctx context.Context, name string) (outcome Outcome) {
	outcome = Outcome{Name: name, State: StatePending}

	defer func() {
		if r := recover(); r != nil {
			outcome.State = StateRejected
			outcome.Reason = fmt.Sprintf("research pipeline failure: %v", r)
		}
	}()

	outcome.State = StateSearching
	results := o.searchVariants(ctx, name)
	outcome.Searched = len(results)

	outcome.State = StateExtracting
	facts := extract.FromResults(results)
	if o.opts.FetchPages {
		for _, r := range results {
			facts = append(facts, extract.FromPage(ctx, r, o.opts.UseBrowser, o.opts.Verbose)...)
		}
	}
	if o.opts.Verbose {
		log.Printf("[RESEARCH] %s: %d results, %d candidate facts", name, len(results), len(facts))
	}

	outcome.State = StateVerifying
	result := o.verifier.Verify(ctx, name, facts)
	outcome.Result = result

	if !result.IsMatch || result.ConfidenceScore < o.opts.AcceptThreshold {
		outcome.State = StateRejected
		outcome.Reason = result.Reason
		return outcome
	}

	outcome.State = StateAccepted
	outcome.Profile = buildProfile(name, result, facts)
	return outcome
}

// searchVariants issues every query variant for the name. Variant failures
// are independent: a timed-out variant contributes zero results and the
// rest still count.
func (o *Orchestrator) searchVariants(ctx context.Context, name string) []search.Result {
	variants := queryVariants(name, o.opts.MaxQueryVariants)
	perVariant := make([][]search.Result, len(variants))

	var g errgroup.Group
	for i, query := range variants {
		g.Go(func() error {
			// A panicking search client loses its own variant, not the name
			defer func() {
				if r := recover(); r != nil && o.opts.Verbose {
					log.Printf("[RESEARCH] Variant %q panicked: %v", query, r)
				}
			}()
			results, err := o.searcher.Search(ctx, query)
			if err != nil {
				if o.opts.Verbose {
					log.Printf("[RESEARCH] Variant %q failed: %v", query, err)
				}
				return nil
			}
			perVariant[i] = results
			return nil
		})
	}
	_ = g.Wait()

	// Union across variants, deduplicated by URL
	seen := make(map[string]bool)
	var union []search.Result
	for _, results := range perVariant {
		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			union = append(union, r)
		}
	}
	return union
}

// queryVariants generates the search queries for a name. Zero means the
// default of 3; anything else is clamped to 2-4.
func queryVariants(name string, max int) []string {
	all := []string{
		fmt.Sprintf("%q ECU \"Edith Cowan University\"", name),
		fmt.Sprintf("%q LinkedIn Australia", name),
		fmt.Sprintf("%q professional", name),
		fmt.Sprintf("%q Perth \"Western Australia\"", name),
	}

	switch {
	case max == 0:
		max = 3
	case max < 2:
		max = 2
	case max > len(all):
		max = len(all)
	}
	return all[:max]
}

// buildProfile assembles a profile from the verifier's normalized facts,
// with one provenance record per search result that contributed a fact.
func buildProfile(name string, result types.VerificationResult, facts []types.CandidateFact) *types.Profile {
	profile := &types.Profile{
		FullName:        name,
		ConfidenceScore: result.ConfidenceScore,
		LastUpdated:     time.Now(),
	}

	normalized := result.NormalizedFacts

	if location, ok := normalized[types.FieldLocation]; ok {
		profile.Location = location
	}
	if raw, ok := normalized[types.FieldIndustry]; ok {
		industry := verify.NormalizeIndustry(raw)
		if industry != "" {
			profile.Industry = &industry
		}
	}
	if url, ok := normalized[types.FieldLinkedInURL]; ok {
		profile.LinkedInURL = url
	}

	title, hasTitle := normalized[types.FieldTitle]
	company, hasCompany := normalized[types.FieldCompany]
	if hasTitle && hasCompany {
		job := types.JobPosition{
			Title:     title,
			Company:   company,
			IsCurrent: true,
			Industry:  profile.Industry,
			Location:  profile.Location,
		}
		if start := parseYearDate(normalized[types.FieldStartDate]); start != nil {
			job.StartDate = start
		}
		profile.AddJobPosition(job)
	}

	if institution, ok := normalized[types.FieldInstitution]; ok {
		profile.AddEducation(types.Education{
			Institution: institution,
			Degree:      normalized[types.FieldDegree],
		})
	}

	now := time.Now()
	for _, url := range contributingURLs(facts) {
		profile.DataSources = append(profile.DataSources, types.DataSourceRecord{
			SourceType:      types.SourceWebResearch,
			SourceURL:       url,
			CollectedAt:     now,
			ConfidenceScore: result.ConfidenceScore,
		})
	}

	return profile
}

// contributingURLs returns the unique source URLs across the fact bundle,
// in first-seen order.
func contributingURLs(facts []types.CandidateFact) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, f := range facts {
		if f.SourceURL == "" || seen[f.SourceURL] {
			continue
		}
		seen[f.SourceURL] = true
		urls = append(urls, f.SourceURL)
	}
	return urls
}

// parseYearDate turns a bare year string into a date pointer.
func parseYearDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	year, err := strconv.Atoi(value)
	if err != nil || year < 1900 || year > 2100 {
		return nil
	}
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

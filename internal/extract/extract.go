// Package extract turns raw search results into candidate professional
// facts. Extraction is heuristic and deliberately over-inclusive: it does
// not deduplicate or resolve conflicts across results, that is the
// verifier's job. Unrecognized content yields zero facts, never an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/jonathan/alumni-research/internal/search"
	"github.com/jonathan/alumni-research/internal/types"
)

var (
	linkedInRe = regexp.MustCompile(`(?i)https?://(?:[a-z]{2,3}\.)?linkedin\.com/in/[A-Za-z0-9\-_%]+`)

	// "Senior Software Engineer at Acme Corp" in snippet or title text.
	// The title is capitalized words ending in a known role noun so that
	// preceding prose ("John Smith is a ...") is not swallowed.
	titleAtCompanyRe = regexp.MustCompile(`\b((?:[A-Z][A-Za-z/&']+ ){0,4}(?:Engineer|Manager|Director|Analyst|Consultant|Developer|Specialist|Coordinator|Officer|Lead|Architect|Scientist|Designer|Accountant|Nurse|Teacher|Lecturer|Advisor|Executive))\s+at\s+([A-Z][A-Za-z0-9&.,'\- ]{1,60})`)

	degreeRe = regexp.MustCompile(`\b((?:Bachelor|Master|Diploma)(?:'s)?(?: of [A-Z][a-z]+(?: [A-Z][a-z]+){0,2})?|PhD|Doctorate)\b`)

	yearRangeRe = regexp.MustCompile(`\b((?:19|20)\d{2})\s*[-–]\s*((?:19|20)\d{2}|[Pp]resent)\b`)
)

// affiliationKeywords signal a university connection in snippet text.
var affiliationKeywords = []string{
	"edith cowan university",
	"edith cowan",
	"ecu",
}

// australianLocations are recognized as location facts when they appear in
// snippet text. Ordered most specific first so the strongest signal wins.
var australianLocations = []string{
	"perth, western australia",
	"western australia",
	"perth",
	"sydney",
	"melbourne",
	"brisbane",
	"adelaide",
	"canberra",
	"australia",
}

// industryKeywords map snippet text hints to raw industry values. The
// values stay free text here; normalization to the closed enum happens in
// the verifier.
var industryKeywords = []string{
	"technology", "software", "information technology",
	"finance", "banking", "accounting",
	"healthcare", "medical",
	"education", "university",
	"consulting",
	"mining", "resources", "energy",
	"government",
	"non-profit", "nonprofit",
	"retail", "marketing",
	"manufacturing",
}

// FromResults extracts candidate facts from a batch of search results.
func FromResults(results []search.Result) []types.CandidateFact {
	var facts []types.CandidateFact
	for _, r := range results {
		facts = append(facts, fromResult(r)...)
	}
	return facts
}

func fromResult(r search.Result) []types.CandidateFact {
	var facts []types.CandidateFact
	text := r.Title + " " + r.Snippet

	add := func(field types.FactField, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		facts = append(facts, types.CandidateFact{
			Field:      field,
			Value:      value,
			SourceURL:  r.URL,
			RawSnippet: r.Snippet,
		})
	}

	if url := linkedInURL(r); url != "" {
		add(types.FieldLinkedInURL, url)
	}

	if title, company, ok := titleAndCompany(r); ok {
		add(types.FieldTitle, title)
		add(types.FieldCompany, company)
	}

	lower := strings.ToLower(text)

	for _, kw := range affiliationKeywords {
		if containsWord(lower, kw) {
			add(types.FieldInstitution, "Edith Cowan University")
			break
		}
	}

	for _, loc := range australianLocations {
		if strings.Contains(lower, loc) {
			add(types.FieldLocation, titleCase(loc))
			break
		}
	}

	for _, kw := range industryKeywords {
		if containsWord(lower, kw) {
			add(types.FieldIndustry, kw)
			break
		}
	}

	if m := degreeRe.FindString(text); m != "" {
		add(types.FieldDegree, m)
	}

	if m := yearRangeRe.FindStringSubmatch(text); m != nil {
		add(types.FieldStartDate, m[1])
		if !strings.EqualFold(m[2], "present") {
			add(types.FieldEndDate, m[2])
		}
	}

	return facts
}

// linkedInURL returns a LinkedIn profile URL found in the result's own URL
// or its text, or empty.
func linkedInURL(r search.Result) string {
	if m := linkedInRe.FindString(r.URL); m != "" {
		return m
	}
	return linkedInRe.FindString(r.Title + " " + r.Snippet)
}

// titleAndCompany looks for title/company co-occurrence. LinkedIn result
// titles of the form "Name - Title - Company | LinkedIn" are tried first,
// then the generic "Title at Company" pattern over the full text.
func titleAndCompany(r search.Result) (title, company string, ok bool) {
	if strings.Contains(r.Title, "LinkedIn") {
		head := strings.SplitN(r.Title, "|", 2)[0]
		parts := strings.Split(head, " - ")
		if len(parts) >= 3 {
			return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), true
		}
	}

	if m := titleAtCompanyRe.FindStringSubmatch(r.Title + " " + r.Snippet); m != nil {
		company = strings.TrimSpace(m[2])
		// trim trailing sentence fragments picked up by the greedy class
		company = strings.TrimRight(company, ".,- ")
		return strings.TrimSpace(m[1]), company, true
	}
	return "", "", false
}

// containsWord reports whether needle occurs in haystack on word
// boundaries, so "it" does not match inside "without".
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isWordChar(haystack[start-1])
		afterOK := end == len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func titleCase(s string) string {
	if parts := strings.SplitN(s, ",", 2); len(parts) == 2 {
		return titleCase(parts[0]) + ", " + titleCase(strings.TrimSpace(parts[1]))
	}
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/alumni-research/internal/search"
	"github.com/jonathan/alumni-research/internal/types"
)

func factValues(facts []types.CandidateFact, field types.FactField) []string {
	var values []string
	for _, f := range facts {
		if f.Field == field {
			values = append(values, f.Value)
		}
	}
	return values
}

func TestFromResults_LinkedInProfile(t *testing.T) {
	results := []search.Result{
		{
			Title:   "Jane Doe - Senior Software Engineer - Acme Corp | LinkedIn",
			URL:     "https://www.linkedin.com/in/jane-doe",
			Snippet: "Jane Doe. Senior Software Engineer at Acme Corp. Perth, Western Australia. Edith Cowan University.",
			Source:  "DuckDuckGo",
		},
	}

	facts := FromResults(results)

	assert.Equal(t, []string{"https://www.linkedin.com/in/jane-doe"}, factValues(facts, types.FieldLinkedInURL))
	assert.Equal(t, []string{"Senior Software Engineer"}, factValues(facts, types.FieldTitle))
	assert.Equal(t, []string{"Acme Corp"}, factValues(facts, types.FieldCompany))
	assert.Equal(t, []string{"Edith Cowan University"}, factValues(facts, types.FieldInstitution))
	assert.Equal(t, []string{"Perth, Western Australia"}, factValues(facts, types.FieldLocation))
}

func TestFromResults_TitleAtCompanyPattern(t *testing.T) {
	results := []search.Result{
		{
			Title:   "Team page",
			URL:     "https://example.com/team",
			Snippet: "John Smith is a Marketing Manager at Widget Pty Ltd in Sydney.",
		},
	}

	facts := FromResults(results)

	assert.Equal(t, []string{"Marketing Manager"}, factValues(facts, types.FieldTitle))
	assert.Equal(t, []string{"Widget Pty Ltd in Sydney"}, factValues(facts, types.FieldCompany))
	assert.Equal(t, []string{"Sydney"}, factValues(facts, types.FieldLocation))
}

func TestFromResults_ECUKeywordWordBoundary(t *testing.T) {
	withECU := FromResults([]search.Result{
		{Title: "Profile", URL: "https://example.com/a", Snippet: "Graduated from ECU in 2015."},
	})
	assert.Equal(t, []string{"Edith Cowan University"}, factValues(withECU, types.FieldInstitution))

	// "ecu" inside another word must not trigger the affiliation signal
	without := FromResults([]search.Result{
		{Title: "Profile", URL: "https://example.com/b", Snippet: "A secure and persecuted record."},
	})
	assert.Empty(t, factValues(without, types.FieldInstitution))
}

func TestFromResults_DegreeAndYears(t *testing.T) {
	facts := FromResults([]search.Result{
		{
			Title:   "Alumni spotlight",
			URL:     "https://example.com/spotlight",
			Snippet: "She holds a Bachelor of Science and worked there 2016 - 2020.",
		},
	})

	assert.Equal(t, []string{"Bachelor of Science"}, factValues(facts, types.FieldDegree))
	assert.Equal(t, []string{"2016"}, factValues(facts, types.FieldStartDate))
	assert.Equal(t, []string{"2020"}, factValues(facts, types.FieldEndDate))
}

func TestFromResults_CurrentPositionHasNoEndDate(t *testing.T) {
	facts := FromResults([]search.Result{
		{Title: "Bio", URL: "https://example.com/bio", Snippet: "Acme Corp 2019 - present"},
	})

	assert.Equal(t, []string{"2019"}, factValues(facts, types.FieldStartDate))
	assert.Empty(t, factValues(facts, types.FieldEndDate))
}

func TestFromResults_UnrecognizedContentYieldsNothing(t *testing.T) {
	facts := FromResults([]search.Result{
		{Title: "404", URL: "https://example.com/404", Snippet: "<<<>>> ???"},
		{Title: "", URL: "", Snippet: ""},
	})
	assert.Empty(t, facts)
}

func TestFromResults_NoDeduplicationAcrossResults(t *testing.T) {
	r := search.Result{
		Title:   "Jane Doe - Engineer - Acme | LinkedIn",
		URL:     "https://www.linkedin.com/in/jane-doe",
		Snippet: "Engineer at Acme.",
	}

	facts := FromResults([]search.Result{r, r})

	urls := factValues(facts, types.FieldLinkedInURL)
	require.Len(t, urls, 2)
	assert.Equal(t, urls[0], urls[1])
}

func TestShouldRetryWithBrowser_GatedByFlag(t *testing.T) {
	thin := "too short"
	rich := strings.Repeat("plenty of extracted profile text ", 40)

	// Without the flag a thin page never triggers a browser launch
	assert.False(t, shouldRetryWithBrowser(false, thin))
	assert.True(t, shouldRetryWithBrowser(true, thin))
	assert.False(t, shouldRetryWithBrowser(true, rich))
}

func TestFromResults_SourceAttribution(t *testing.T) {
	facts := FromResults([]search.Result{
		{
			Title:   "Jane Doe - Engineer - Acme | LinkedIn",
			URL:     "https://www.linkedin.com/in/jane-doe",
			Snippet: "Engineer profile.",
		},
	})

	require.NotEmpty(t, facts)
	for _, f := range facts {
		assert.Equal(t, "https://www.linkedin.com/in/jane-doe", f.SourceURL)
		assert.Equal(t, "Engineer profile.", f.RawSnippet)
	}
}

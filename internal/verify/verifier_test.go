package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/alumni-research/internal/llm"
	"github.com/jonathan/alumni-research/internal/types"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GetModel(_ llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error { return nil }

func linkedInFacts() []types.CandidateFact {
	return []types.CandidateFact{
		{
			Field:      types.FieldLinkedInURL,
			Value:      "https://www.linkedin.com/in/jane-doe",
			SourceURL:  "https://www.linkedin.com/in/jane-doe",
			RawSnippet: "Jane Doe. Senior Software Engineer at Acme Corp. Perth, Western Australia.",
		},
		{
			Field:      types.FieldLocation,
			Value:      "Perth, Western Australia",
			SourceURL:  "https://www.linkedin.com/in/jane-doe",
			RawSnippet: "Jane Doe. Senior Software Engineer at Acme Corp. Perth, Western Australia.",
		},
		{
			Field:      types.FieldIndustry,
			Value:      "software",
			SourceURL:  "https://www.linkedin.com/in/jane-doe",
			RawSnippet: "Jane Doe. Senior Software Engineer at Acme Corp. Perth, Western Australia.",
		},
	}
}

func TestVerify_Tier1_AcceptsModelJudgment(t *testing.T) {
	client := &fakeLLM{response: `{
		"is_match": true,
		"confidence_score": 0.85,
		"reason": "name and location align",
		"normalized_facts": {
			"title": "Senior Software Engineer",
			"industry": "Financial Services",
			"bogus_field": "dropped"
		}
	}`}

	v := New(client, Options{})
	result := v.Verify(context.Background(), "Jane Doe", linkedInFacts())

	assert.Equal(t, 1, result.Tier)
	assert.True(t, result.IsMatch)
	assert.InDelta(t, 0.85, result.ConfidenceScore, 0.001)
	assert.Equal(t, "Senior Software Engineer", result.NormalizedFacts[types.FieldTitle])
	assert.Equal(t, "Finance", result.NormalizedFacts[types.FieldIndustry])
	_, hasBogus := result.NormalizedFacts["bogus_field"]
	assert.False(t, hasBogus)
}

func TestVerify_Tier1_ScoreClamped(t *testing.T) {
	client := &fakeLLM{response: `{"is_match": true, "confidence_score": 0.99, "reason": "ok"}`}

	v := New(client, Options{})
	result := v.Verify(context.Background(), "Jane Doe", linkedInFacts())

	assert.LessOrEqual(t, result.ConfidenceScore, 1.0)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0.0)
}

func TestVerify_FallsBackOnUnparsableModelOutput(t *testing.T) {
	client := &fakeLLM{response: "I think this is probably a match!"}

	v := New(client, Options{})
	result := v.Verify(context.Background(), "Jane Doe", linkedInFacts())

	assert.Equal(t, 2, result.Tier)
}

func TestVerify_FallsBackOnModelError(t *testing.T) {
	client := &fakeLLM{err: &llm.UnavailableError{Message: "model offline"}}

	v := New(client, Options{})
	result := v.Verify(context.Background(), "Jane Doe", linkedInFacts())

	assert.Equal(t, 2, result.Tier)
	assert.True(t, result.IsMatch)
}

func TestVerify_Tier2_StrongNameAndLocation(t *testing.T) {
	v := New(nil, Options{})
	result := v.Verify(context.Background(), "Jane Doe", linkedInFacts())

	assert.Equal(t, 2, result.Tier)
	assert.True(t, result.IsMatch)
	assert.Greater(t, result.ConfidenceScore, FallbackThreshold)
	assert.Equal(t, "Technology", result.NormalizedFacts[types.FieldIndustry])
}

func TestVerify_Tier2_ConfiguredThresholdChangesDecision(t *testing.T) {
	// Full name overlap, no location signal: score lands at 0.7
	facts := []types.CandidateFact{
		{
			Field:      types.FieldTitle,
			Value:      "Software Engineer",
			SourceURL:  "https://example.com/jane",
			RawSnippet: "Jane Doe, Software Engineer.",
		},
	}

	result := New(nil, Options{}).Verify(context.Background(), "Jane Doe", facts)
	assert.True(t, result.IsMatch)

	strict := New(nil, Options{FallbackThreshold: 0.8}).Verify(context.Background(), "Jane Doe", facts)
	assert.False(t, strict.IsMatch)
	assert.Equal(t, result.ConfidenceScore, strict.ConfidenceScore)
}

func TestVerify_Tier2_WeakSignalRejected(t *testing.T) {
	facts := []types.CandidateFact{
		{
			Field:      types.FieldTitle,
			Value:      "Store Manager",
			SourceURL:  "https://example.com/other",
			RawSnippet: "John Smith is a Store Manager at a shop in London.",
		},
	}

	v := New(nil, Options{})
	result := v.Verify(context.Background(), "Jane Doe", facts)

	assert.Equal(t, 2, result.Tier)
	assert.False(t, result.IsMatch)
	assert.LessOrEqual(t, result.ConfidenceScore, FallbackThreshold)
	assert.Contains(t, result.Reason, "name similarity")
	assert.Empty(t, result.NormalizedFacts)
}

func TestVerify_Tier2_NoFacts(t *testing.T) {
	v := New(nil, Options{})
	result := v.Verify(context.Background(), "Jane Doe", nil)

	assert.False(t, result.IsMatch)
	assert.Equal(t, 0.0, result.ConfidenceScore)
}

func TestVerify_Tier2_LocationAloneInsufficient(t *testing.T) {
	facts := []types.CandidateFact{
		{
			Field:      types.FieldLocation,
			Value:      "Perth, Western Australia",
			SourceURL:  "https://example.com/page",
			RawSnippet: "A completely unrelated person from Perth, Western Australia.",
		},
	}

	v := New(nil, Options{})
	result := v.Verify(context.Background(), "Jane Doe", facts)

	// Location bonus without name overlap must not clear the bar
	assert.False(t, result.IsMatch)
}

func TestNameSimilarity_TokenOverlap(t *testing.T) {
	facts := []types.CandidateFact{
		{RawSnippet: "Jane Doe works in Perth", Value: ""},
	}
	require.Equal(t, 1.0, nameSimilarity("Jane Doe", facts))

	partial := []types.CandidateFact{
		{RawSnippet: "Jane Smith works in Perth", Value: ""},
	}
	require.Equal(t, 0.5, nameSimilarity("Jane Doe", partial))

	assert.Equal(t, 0.0, nameSimilarity("", facts))
}

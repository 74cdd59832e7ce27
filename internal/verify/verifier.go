// Package verify decides whether a bundle of candidate facts belongs to a
// target identity. Verification is two-tier: a model-backed judgment when a
// language model is configured, with a lexical scoring fallback that is
// always computable. Both tiers funnel into one VerificationResult.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/alumni-research/internal/llm"
	"github.com/jonathan/alumni-research/internal/prompts"
	"github.com/jonathan/alumni-research/internal/schemas"
	"github.com/jonathan/alumni-research/internal/types"
)

// FallbackThreshold is the default acceptance cutoff for the lexical tier.
const FallbackThreshold = 0.6

// Lexical tier weights: name similarity dominates, an Australian location
// signal adds a fixed bonus.
const (
	nameWeight    = 0.7
	locationBonus = 0.3
)

// minNameSimilarity guards against accepting on location signal alone.
const minNameSimilarity = 0.5

// australianIndicators mark a location value as consistent with the
// expected alumni population.
var australianIndicators = []string{"australia", "perth", "sydney", "melbourne", "brisbane", "adelaide", "canberra"}

// Options tunes the verifier.
type Options struct {
	// FallbackThreshold is the acceptance cutoff for the lexical tier.
	// Zero means the default.
	FallbackThreshold float64
	Verbose           bool
}

// Verifier scores candidate-fact bundles against a target name.
type Verifier struct {
	client    llm.Client
	threshold float64
	verbose   bool
}

// New creates a verifier. client may be nil, in which case only the
// lexical tier runs.
func New(client llm.Client, opts Options) *Verifier {
	if opts.FallbackThreshold <= 0 {
		opts.FallbackThreshold = FallbackThreshold
	}
	return &Verifier{client: client, threshold: opts.FallbackThreshold, verbose: opts.Verbose}
}

// Verify scores the fact bundle. Model failures of any kind fall through
// to the lexical tier silently; Verify itself never returns an error.
func (v *Verifier) Verify(ctx context.Context, targetName string, facts []types.CandidateFact) types.VerificationResult {
	if v.client != nil {
		result, err := v.verifyWithModel(ctx, targetName, facts)
		if err == nil {
			return result
		}
		if v.verbose {
			log.Printf("[VERIFY] Model verification failed, falling back to lexical scoring: %v", err)
		}
	}
	return v.lexicalVerification(targetName, facts)
}

// modelResponse is the wire shape of the tier-1 judgment.
type modelResponse struct {
	IsMatch         bool              `json:"is_match"`
	ConfidenceScore float64           `json:"confidence_score"`
	Reason          string            `json:"reason"`
	NormalizedFacts map[string]string `json:"normalized_facts"`
}

// knownFactFields is the closed set of keys accepted from the model's
// normalized_facts object. Anything else is dropped.
var knownFactFields = map[string]types.FactField{
	"title":        types.FieldTitle,
	"company":      types.FieldCompany,
	"start_date":   types.FieldStartDate,
	"end_date":     types.FieldEndDate,
	"location":     types.FieldLocation,
	"industry":     types.FieldIndustry,
	"linkedin_url": types.FieldLinkedInURL,
	"institution":  types.FieldInstitution,
	"degree":       types.FieldDegree,
}

func (v *Verifier) verifyWithModel(ctx context.Context, targetName string, facts []types.CandidateFact) (types.VerificationResult, error) {
	template, err := prompts.Get("verification.json", "verify-profile-match")
	if err != nil {
		return types.VerificationResult{}, err
	}

	prompt := prompts.Format(template, map[string]string{
		"TargetName": targetName,
		"Facts":      formatFacts(facts),
		"Industries": industryList(),
	})

	raw, err := llm.CompleteJSON(ctx, v.client, prompt, schemas.MustLoad("verification_result.json"), llm.TierStandard)
	if err != nil {
		return types.VerificationResult{}, err
	}

	var resp modelResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return types.VerificationResult{}, &llm.ResponseError{Message: "failed to decode verification payload", Content: string(raw), Cause: err}
	}

	normalized := make(map[types.FactField]string)
	for key, value := range resp.NormalizedFacts {
		field, ok := knownFactFields[key]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if field == types.FieldIndustry {
			value = string(NormalizeIndustry(value))
		}
		normalized[field] = value
	}

	return types.VerificationResult{
		IsMatch:         resp.IsMatch,
		ConfidenceScore: clampScore(resp.ConfidenceScore),
		Reason:          resp.Reason,
		NormalizedFacts: normalized,
		Tier:            1,
	}, nil
}

// lexicalVerification scores without a model: token-overlap name similarity
// weighted 70%, plus a 30% bonus when a location fact looks Australian.
func (v *Verifier) lexicalVerification(targetName string, facts []types.CandidateFact) types.VerificationResult {
	similarity := nameSimilarity(targetName, facts)
	locationMatch := hasAustralianLocation(facts)

	score := similarity * nameWeight
	if locationMatch {
		score += locationBonus
	}
	score = clampScore(score)

	isMatch := score > v.threshold && similarity > minNameSimilarity

	normalized := make(map[types.FactField]string)
	if isMatch {
		for _, f := range facts {
			if _, seen := normalized[f.Field]; seen {
				continue
			}
			value := f.Value
			if f.Field == types.FieldIndustry {
				value = string(NormalizeIndustry(value))
			}
			normalized[f.Field] = value
		}
	}

	return types.VerificationResult{
		IsMatch:         isMatch,
		ConfidenceScore: score,
		Reason:          fmt.Sprintf("lexical verification: name similarity %.2f, location match: %v", similarity, locationMatch),
		NormalizedFacts: normalized,
		Tier:            2,
	}
}

// nameSimilarity is the fraction of the target's name tokens that appear
// anywhere in the fact bundle's text.
func nameSimilarity(targetName string, facts []types.CandidateFact) float64 {
	targetTokens := strings.Fields(strings.ToLower(targetName))
	if len(targetTokens) == 0 || len(facts) == 0 {
		return 0
	}

	observed := make(map[string]bool)
	for _, f := range facts {
		for _, tok := range strings.Fields(strings.ToLower(f.RawSnippet + " " + f.Value)) {
			observed[strings.Trim(tok, ".,;:()\"'")] = true
		}
	}

	matched := 0
	for _, tok := range targetTokens {
		if observed[strings.Trim(tok, ".,;:()\"'")] {
			matched++
		}
	}
	return float64(matched) / float64(len(targetTokens))
}

func hasAustralianLocation(facts []types.CandidateFact) bool {
	for _, f := range facts {
		if f.Field != types.FieldLocation {
			continue
		}
		value := strings.ToLower(f.Value)
		for _, indicator := range australianIndicators {
			if strings.Contains(value, indicator) {
				return true
			}
		}
	}
	return false
}

func formatFacts(facts []types.CandidateFact) string {
	if len(facts) == 0 {
		return "(no facts were extracted)"
	}
	var b strings.Builder
	for _, f := range facts {
		fmt.Fprintf(&b, "- %s: %q (source: %s)\n", f.Field, f.Value, f.SourceURL)
		if f.RawSnippet != "" {
			fmt.Fprintf(&b, "  context: %s\n", f.RawSnippet)
		}
	}
	return b.String()
}

func industryList() string {
	names := make([]string, 0, len(types.AllIndustries()))
	for _, ind := range types.AllIndustries() {
		names = append(names, string(ind))
	}
	return strings.Join(names, ", ")
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

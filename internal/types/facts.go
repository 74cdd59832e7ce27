package types

// FactField identifies which profile attribute a candidate fact claims.
type FactField string

// FactField constants define the closed set of extractable fields
const (
	FieldTitle       FactField = "title"
	FieldCompany     FactField = "company"
	FieldStartDate   FactField = "start_date"
	FieldEndDate     FactField = "end_date"
	FieldLocation    FactField = "location"
	FieldIndustry    FactField = "industry"
	FieldLinkedInURL FactField = "linkedin_url"
	FieldInstitution FactField = "institution"
	FieldDegree      FactField = "degree"
)

// CandidateFact is one unverified attribute extracted from a single search
// result. Facts are ephemeral: they live for one research pass and are
// consumed by the verifier.
type CandidateFact struct {
	Field      FactField `json:"field"`
	Value      string    `json:"value"`
	SourceURL  string    `json:"source_url"`
	RawSnippet string    `json:"raw_snippet"`
}

// VerificationResult is the verifier's judgment over one fact bundle.
type VerificationResult struct {
	IsMatch         bool                 `json:"is_match"`
	ConfidenceScore float64              `json:"confidence_score"`
	Reason          string               `json:"reason"`
	NormalizedFacts map[FactField]string `json:"normalized_facts,omitempty"`
	// Tier records which verification path produced the result: 1 for the
	// model-backed path, 2 for the lexical fallback.
	Tier int `json:"tier"`
}

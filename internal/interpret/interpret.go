// Package interpret converts natural-language questions about the alumni
// collection into closed-schema structured queries. The model output is
// untrusted: every field is validated against the closed set and anything
// unrecognized is dropped rather than failed on.
package interpret

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
	"github.com/jonathan/alumni-research/internal/verify"
)

// InterpretationError means no structured filters could be derived from the
// question. Callers should treat it as "no filters", not as a fatal error.
type InterpretationError struct {
	Question string
	Message  string
	Cause    error
}

func (e *InterpretationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to interpret question %q: %s: %v", e.Question, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to interpret question %q: %s", e.Question, e.Message)
}

func (e *InterpretationError) Unwrap() error {
	return e.Cause
}

// Interpreter derives structured queries from free-text questions.
type Interpreter struct {
	client  llm.Client
	verbose bool
}

// New creates an interpreter backed by the given model client.
func New(client llm.Client, verbose bool) *Interpreter {
	return &Interpreter{client: client, verbose: verbose}
}

// Interpret converts a question into a StructuredQuery. A question with no
// recognizable filter yields the empty query, which executes as match-all.
func (i *Interpreter) Interpret(ctx context.Context, question string) (types.StructuredQuery, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return types.StructuredQuery{}, &InterpretationError{Question: question, Message: "question is empty"}
	}
	if i.client == nil {
		return types.StructuredQuery{}, &InterpretationError{Question: question, Message: "no language model configured"}
	}

	template, err := prompts.Get("query.json", "interpret-question")
	if err != nil {
		return types.StructuredQuery{}, &InterpretationError{Question: question, Message: "failed to load prompt", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{
		"Question":   question,
		"Industries": industryList(),
	})

	raw, err := llm.CompleteJSON(ctx, i.client, prompt, schemas.MustLoad("structured_query.json"), llm.TierLite)
	if err != nil {
		return types.StructuredQuery{}, &InterpretationError{Question: question, Message: "model call failed", Cause: err}
	}

	// Unknown keys in the payload are dropped here: decoding into the
	// closed struct ignores anything outside the field set.
	var query types.StructuredQuery
	if err := json.Unmarshal(raw, &query); err != nil {
		return types.StructuredQuery{}, &InterpretationError{Question: question, Message: "unparsable model output", Cause: err}
	}

	query = sanitize(query)

	if i.verbose {
		log.Printf("[INTERPRET] %q -> %+v", question, query)
	}
	return query, nil
}

// sanitize trims string fields, forces industry onto the closed enum and
// discards implausible graduation years.
func sanitize(q types.StructuredQuery) types.StructuredQuery {
	q.Name = strings.TrimSpace(q.Name)
	q.Company = strings.TrimSpace(q.Company)
	q.Location = strings.TrimSpace(q.Location)
	q.Industry = strings.TrimSpace(q.Industry)

	if q.Industry != "" && !types.IsValidIndustry(q.Industry) {
		q.Industry = string(verify.NormalizeIndustry(q.Industry))
	}

	if !plausibleYear(q.GraduationYearMin) {
		q.GraduationYearMin = 0
	}
	if !plausibleYear(q.GraduationYearMax) {
		q.GraduationYearMax = 0
	}
	if q.GraduationYearMin != 0 && q.GraduationYearMax != 0 && q.GraduationYearMin > q.GraduationYearMax {
		q.GraduationYearMin, q.GraduationYearMax = q.GraduationYearMax, q.GraduationYearMin
	}
	return q
}

func plausibleYear(year int) bool {
	return year >= 1900 && year <= 2100
}

func industryList() string {
	names := make([]string, 0, len(types.AllIndustries()))
	for _, ind := range types.AllIndustries() {
		names = append(names, string(ind))
	}
	return strings.Join(names, ", ")
}

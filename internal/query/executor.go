// Package query executes structured queries against the profile store. The
// executor is the only path from a StructuredQuery to storage: every filter
// value travels as a bound parameter, never as query text.
package query

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/alumni-research/internal/db"
	"github.com/jonathan/alumni-research/internal/interpret"
	"github.com/jonathan/alumni-research/internal/types"
)

// ProfileStore is the read surface the executor needs.
type ProfileStore interface {
	SearchProfiles(ctx context.Context, filters db.ProfileFilters) ([]types.Profile, error)
}

// Executor turns structured queries into store reads.
type Executor struct {
	store   ProfileStore
	verbose bool
}

// NewExecutor creates an executor over the given store.
func NewExecutor(store ProfileStore, verbose bool) *Executor {
	return &Executor{store: store, verbose: verbose}
}

// Execute runs the query. All present fields are ANDed; the empty query
// matches every profile. No match is an empty list, not an error.
func (e *Executor) Execute(ctx context.Context, q types.StructuredQuery) ([]types.Profile, error) {
	filters := db.ProfileFilters{
		Name:              q.Name,
		Industry:          q.Industry,
		Company:           q.Company,
		Location:          q.Location,
		GraduationYearMin: q.GraduationYearMin,
		GraduationYearMax: q.GraduationYearMax,
	}

	profiles, err := e.store.SearchProfiles(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to execute structured query: %w", err)
	}

	if e.verbose {
		log.Printf("[QUERY] %+v matched %d profiles", q, len(profiles))
	}
	return profiles, nil
}

// Service answers free-text questions by chaining interpretation and
// execution.
type Service struct {
	interpreter *interpret.Interpreter
	executor    *Executor
	verbose     bool
}

// NewService wires an interpreter and executor together.
func NewService(interpreter *interpret.Interpreter, executor *Executor, verbose bool) *Service {
	return &Service{interpreter: interpreter, executor: executor, verbose: verbose}
}

// Ask interprets the question and executes the resulting query. When no
// structured filters can be derived the question falls back to match-all
// rather than failing.
func (s *Service) Ask(ctx context.Context, question string) (types.StructuredQuery, []types.Profile, error) {
	structured, err := s.interpreter.Interpret(ctx, question)
	if err != nil {
		if s.verbose {
			log.Printf("[QUERY] Interpretation failed, treating as match-all: %v", err)
		}
		structured = types.StructuredQuery{}
	}

	profiles, err := s.executor.Execute(ctx, structured)
	if err != nil {
		return structured, nil, err
	}
	return structured, profiles, nil
}

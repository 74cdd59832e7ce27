package interpret

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

func TestInterpret_MiningInPerth(t *testing.T) {
	client := &fakeLLM{response: `{"industry": "Mining", "location": "Perth"}`}

	query, err := New(client, false).Interpret(context.Background(), "alumni working in mining in Perth")
	require.NoError(t, err)

	assert.Equal(t, types.StructuredQuery{Industry: "Mining", Location: "Perth"}, query)
}

func TestInterpret_EmptyObjectYieldsEmptyQuery(t *testing.T) {
	client := &fakeLLM{response: `{}`}

	query, err := New(client, false).Interpret(context.Background(), "tell me something interesting")
	require.NoError(t, err)

	assert.True(t, query.IsEmpty())
}

func TestInterpret_UnknownFieldsDropped(t *testing.T) {
	client := &fakeLLM{response: `{"name": "John Smith", "favourite_colour": "blue"}`}

	query, err := New(client, false).Interpret(context.Background(), "find John Smith")
	require.NoError(t, err)

	assert.Equal(t, types.StructuredQuery{Name: "John Smith"}, query)
}

func TestInterpret_NonEnumIndustryNormalized(t *testing.T) {
	client := &fakeLLM{response: `{"industry": "Financial Services"}`}

	query, err := New(client, false).Interpret(context.Background(), "people in financial services")
	require.NoError(t, err)

	assert.Equal(t, "Finance", query.Industry)
}

func TestInterpret_YearRangeSwappedWhenInverted(t *testing.T) {
	client := &fakeLLM{response: `{"graduation_year_min": 2020, "graduation_year_max": 2018}`}

	query, err := New(client, false).Interpret(context.Background(), "graduates from 2018 to 2020")
	require.NoError(t, err)

	assert.Equal(t, 2018, query.GraduationYearMin)
	assert.Equal(t, 2020, query.GraduationYearMax)
}

func TestInterpret_ImplausibleYearDropped(t *testing.T) {
	client := &fakeLLM{response: `{"graduation_year_min": 20}`}

	query, err := New(client, false).Interpret(context.Background(), "graduates from year 20")
	require.NoError(t, err)

	assert.Zero(t, query.GraduationYearMin)
}

func TestInterpret_UnparsableOutput(t *testing.T) {
	client := &fakeLLM{response: "sure! here are your filters"}

	_, err := New(client, false).Interpret(context.Background(), "alumni in mining")
	require.Error(t, err)

	var interpErr *InterpretationError
	assert.ErrorAs(t, err, &interpErr)
}

func TestInterpret_ModelError(t *testing.T) {
	client := &fakeLLM{err: &llm.UnavailableError{Message: "model offline"}}

	_, err := New(client, false).Interpret(context.Background(), "alumni in mining")

	var interpErr *InterpretationError
	require.ErrorAs(t, err, &interpErr)
}

func TestInterpret_EmptyQuestion(t *testing.T) {
	_, err := New(&fakeLLM{}, false).Interpret(context.Background(), "   ")

	var interpErr *InterpretationError
	require.ErrorAs(t, err, &interpErr)
}

func TestInterpret_NoClient(t *testing.T) {
	_, err := New(nil, false).Interpret(context.Background(), "alumni in mining")

	var interpErr *InterpretationError
	require.ErrorAs(t, err, &interpErr)
}

package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/alumni-research/internal/db"
	"github.com/jonathan/alumni-research/internal/interpret"
	"github.com/jonathan/alumni-research/internal/types"
)

type fakeStore struct {
	profiles    []types.Profile
	lastFilters db.ProfileFilters
	err         error
}

func (f *fakeStore) SearchProfiles(_ context.Context, filters db.ProfileFilters) ([]types.Profile, error) {
	f.lastFilters = filters
	if f.err != nil {
		return nil, f.err
	}

	var matched []types.Profile
	for _, p := range f.profiles {
		if filters.Industry != "" && (p.Industry == nil || string(*p.Industry) != filters.Industry) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func sampleProfiles() []types.Profile {
	mining := types.IndustryMining
	tech := types.IndustryTechnology
	return []types.Profile{
		{FullName: "Jane Doe", Industry: &mining, Location: "Perth"},
		{FullName: "John Smith", Industry: &tech, Location: "Sydney"},
	}
}

func TestExecute_EmptyQueryMatchesAll(t *testing.T) {
	store := &fakeStore{profiles: sampleProfiles()}
	executor := NewExecutor(store, false)

	profiles, err := executor.Execute(context.Background(), types.StructuredQuery{})
	require.NoError(t, err)

	assert.Len(t, profiles, 2)
	assert.Equal(t, db.ProfileFilters{}, store.lastFilters)
}

func TestExecute_FiltersForwardedToStore(t *testing.T) {
	store := &fakeStore{profiles: sampleProfiles()}
	executor := NewExecutor(store, false)

	profiles, err := executor.Execute(context.Background(), types.StructuredQuery{
		Industry:          "Mining",
		Location:          "Perth",
		GraduationYearMin: 2010,
	})
	require.NoError(t, err)

	assert.Equal(t, "Mining", store.lastFilters.Industry)
	assert.Equal(t, "Perth", store.lastFilters.Location)
	assert.Equal(t, 2010, store.lastFilters.GraduationYearMin)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Jane Doe", profiles[0].FullName)
}

func TestExecute_StoreErrorWrapped(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	executor := NewExecutor(store, false)

	_, err := executor.Execute(context.Background(), types.StructuredQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute structured query")
}

func TestAsk_InterpretationFailureFallsBackToMatchAll(t *testing.T) {
	store := &fakeStore{profiles: sampleProfiles()}
	// nil client makes every interpretation fail
	service := NewService(interpret.New(nil, false), NewExecutor(store, false), false)

	structured, profiles, err := service.Ask(context.Background(), "alumni in mining")
	require.NoError(t, err)

	assert.True(t, structured.IsEmpty())
	assert.Len(t, profiles, 2)
}

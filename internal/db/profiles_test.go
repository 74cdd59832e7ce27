package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/alumni-research/internal/types"
)

func TestBuildProfileSearchQuery_NoFilters(t *testing.T) {
	query, args := buildProfileSearchQuery(ProfileFilters{})

	assert.NotContains(t, query, "ILIKE")
	assert.Contains(t, query, "ORDER BY updated_at DESC LIMIT $1")
	require.Len(t, args, 1)
	assert.Equal(t, 100, args[0])
}

func TestBuildProfileSearchQuery_AllFilters(t *testing.T) {
	query, args := buildProfileSearchQuery(ProfileFilters{
		Name:              "Jane",
		Industry:          "Mining",
		Company:           "Acme",
		Location:          "Perth",
		GraduationYearMin: 2015,
		GraduationYearMax: 2020,
		Limit:             10,
	})

	assert.Contains(t, query, "full_name ILIKE $1")
	assert.Contains(t, query, "industry = $2")
	assert.Contains(t, query, "current_position->>'company' ILIKE $3")
	assert.Contains(t, query, "location ILIKE $4")
	assert.Contains(t, query, "graduation_year >= $5")
	assert.Contains(t, query, "graduation_year <= $6")
	assert.Contains(t, query, "LIMIT $7")

	require.Len(t, args, 7)
	assert.Equal(t, "%Jane%", args[0])
	assert.Equal(t, "Mining", args[1])
	assert.Equal(t, "%Acme%", args[2])
	assert.Equal(t, "%Perth%", args[3])
	assert.Equal(t, 2015, args[4])
	assert.Equal(t, 2020, args[5])
	assert.Equal(t, 10, args[6])
}

func TestBuildProfileSearchQuery_FilterValuesNeverInSQL(t *testing.T) {
	malicious := "'; DROP TABLE profiles; --"
	query, args := buildProfileSearchQuery(ProfileFilters{Name: malicious})

	assert.NotContains(t, query, malicious)
	assert.Contains(t, args, "%"+malicious+"%")
}

func TestBuildProfileSearchQuery_ArgNumbersAreSequential(t *testing.T) {
	query, args := buildProfileSearchQuery(ProfileFilters{
		Industry: "Technology",
		Location: "Sydney",
	})

	assert.Contains(t, query, "industry = $1")
	assert.Contains(t, query, "location ILIKE $2")
	assert.Contains(t, query, "LIMIT $3")
	assert.Len(t, args, 3)
	assert.NotContains(t, query, "$4")
}

func TestMarshalNullable_EmptyBecomesNull(t *testing.T) {
	for _, v := range []any{
		(*types.JobPosition)(nil),
		[]types.JobPosition{},
		[]types.Education{},
		[]types.DataSourceRecord{},
	} {
		data, err := marshalNullable(v)
		require.NoError(t, err)
		assert.Nil(t, data)
	}
}

func TestMarshalNullable_PopulatedMarshals(t *testing.T) {
	data, err := marshalNullable([]types.JobPosition{{Title: "Engineer", Company: "Acme"}})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"Engineer"`))
}

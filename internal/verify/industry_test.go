package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/alumni-research/internal/types"
)

func TestNormalizeIndustry_ExactEnumMember(t *testing.T) {
	assert.Equal(t, types.IndustryMining, NormalizeIndustry("Mining"))
	assert.Equal(t, types.IndustryNonProfit, NormalizeIndustry("Non-Profit"))
}

func TestNormalizeIndustry_FinancialServices(t *testing.T) {
	assert.Equal(t, types.IndustryFinance, NormalizeIndustry("Financial Services"))
}

func TestNormalizeIndustry_MappedAliases(t *testing.T) {
	cases := map[string]types.Industry{
		"software":               types.IndustryTechnology,
		"Information Technology": types.IndustryTechnology,
		"banking":                types.IndustryFinance,
		"medical":                types.IndustryHealthcare,
		"university":             types.IndustryEducation,
		"advisory":               types.IndustryConsulting,
		"resources":              types.IndustryMining,
		"public sector":          types.IndustryGovernment,
		"ngo":                    types.IndustryNonProfit,
		"sales":                  types.IndustryRetail,
		"production":             types.IndustryManufacturing,
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeIndustry(input), "input %q", input)
	}
}

func TestNormalizeIndustry_PartialMatch(t *testing.T) {
	assert.Equal(t, types.IndustryTechnology, NormalizeIndustry("Software Engineering"))
	assert.Equal(t, types.IndustryMining, NormalizeIndustry("Mining and Resources"))
}

func TestNormalizeIndustry_UnknownDefaultsToOther(t *testing.T) {
	assert.Equal(t, types.IndustryOther, NormalizeIndustry("Underwater Basket Weaving"))
}

func TestNormalizeIndustry_EmptyStaysEmpty(t *testing.T) {
	assert.Equal(t, types.Industry(""), NormalizeIndustry(""))
	assert.Equal(t, types.Industry(""), NormalizeIndustry("   "))
}

func TestNormalizeIndustry_NeverFreeText(t *testing.T) {
	inputs := []string{"Mining", "financial services", "tech startup", "zzz", "Health & Wellbeing"}
	for _, input := range inputs {
		got := NormalizeIndustry(input)
		assert.True(t, types.IsValidIndustry(string(got)), "input %q produced %q", input, got)
	}
}

package verify

import (
	"strings"

	"github.com/jonathan/alumni-research/internal/types"
)

// industryMapping resolves common free-text industry names to the closed
// enum. Lookup is exact first, then substring in either direction.
var industryMapping = map[string]types.Industry{
	"technology":              types.IndustryTechnology,
	"information technology":  types.IndustryTechnology,
	"software":                types.IndustryTechnology,
	"it":                      types.IndustryTechnology,
	"computer":                types.IndustryTechnology,
	"tech":                    types.IndustryTechnology,
	"engineering":             types.IndustryTechnology,
	"data":                    types.IndustryTechnology,
	"ai":                      types.IndustryTechnology,
	"artificial intelligence": types.IndustryTechnology,

	"finance":    types.IndustryFinance,
	"financial":  types.IndustryFinance,
	"banking":    types.IndustryFinance,
	"investment": types.IndustryFinance,
	"accounting": types.IndustryFinance,

	"healthcare":     types.IndustryHealthcare,
	"health":         types.IndustryHealthcare,
	"medical":        types.IndustryHealthcare,
	"pharmaceutical": types.IndustryHealthcare,
	"biotech":        types.IndustryHealthcare,

	"education":  types.IndustryEducation,
	"academic":   types.IndustryEducation,
	"teaching":   types.IndustryEducation,
	"university": types.IndustryEducation,
	"school":     types.IndustryEducation,

	"consulting": types.IndustryConsulting,
	"consultant": types.IndustryConsulting,
	"advisory":   types.IndustryConsulting,

	"mining":    types.IndustryMining,
	"resources": types.IndustryMining,
	"energy":    types.IndustryMining,

	"government":    types.IndustryGovernment,
	"public sector": types.IndustryGovernment,
	"military":      types.IndustryGovernment,

	"non-profit": types.IndustryNonProfit,
	"nonprofit":  types.IndustryNonProfit,
	"charity":    types.IndustryNonProfit,
	"ngo":        types.IndustryNonProfit,

	"retail":    types.IndustryRetail,
	"sales":     types.IndustryRetail,
	"marketing": types.IndustryRetail,

	"manufacturing": types.IndustryManufacturing,
	"production":    types.IndustryManufacturing,
	"industrial":    types.IndustryManufacturing,
}

// industryMatchOrder fixes the precedence of partial-match lookups. Longer,
// more specific keys come before short generic ones like "it" and "ai".
var industryMatchOrder = []string{
	"information technology",
	"artificial intelligence",
	"manufacturing",
	"pharmaceutical",
	"public sector",
	"healthcare",
	"consulting",
	"consultant",
	"accounting",
	"non-profit",
	"government",
	"technology",
	"investment",
	"production",
	"industrial",
	"university",
	"nonprofit",
	"financial",
	"marketing",
	"resources",
	"education",
	"advisory",
	"teaching",
	"academic",
	"software",
	"computer",
	"military",
	"medical",
	"finance",
	"banking",
	"biotech",
	"charity",
	"engineering",
	"mining",
	"energy",
	"health",
	"school",
	"retail",
	"sales",
	"data",
	"tech",
	"ngo",
	"ai",
	"it",
}

// NormalizeIndustry maps a free-text industry value onto the closed enum.
// An empty input stays empty; anything unrecognized becomes Other, so raw
// text never survives past this point.
func NormalizeIndustry(raw string) types.Industry {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ""
	}

	// Exact enum members pass through unchanged.
	if types.IsValidIndustry(strings.TrimSpace(raw)) {
		return types.Industry(strings.TrimSpace(raw))
	}

	if ind, ok := industryMapping[normalized]; ok {
		return ind
	}

	// Partial matches scan in a fixed order so the result is stable when
	// multiple keys could apply.
	for _, key := range industryMatchOrder {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return industryMapping[key]
		}
	}

	return types.IndustryOther
}

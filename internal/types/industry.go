package types

// Industry is the closed set of industry classifications a profile may carry.
// Free-text industry strings from research never reach storage directly; the
// verifier maps them onto this set first.
type Industry string

// Industry constants define the closed industry enum
const (
	IndustryTechnology    Industry = "Technology"
	IndustryFinance       Industry = "Finance"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryEducation     Industry = "Education"
	IndustryConsulting    Industry = "Consulting"
	IndustryMining        Industry = "Mining"
	IndustryGovernment    Industry = "Government"
	IndustryNonProfit     Industry = "Non-Profit"
	IndustryRetail        Industry = "Retail"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryOther         Industry = "Other"
)

// AllIndustries returns every member of the closed industry enum.
func AllIndustries() []Industry {
	return []Industry{
		IndustryTechnology,
		IndustryFinance,
		IndustryHealthcare,
		IndustryEducation,
		IndustryConsulting,
		IndustryMining,
		IndustryGovernment,
		IndustryNonProfit,
		IndustryRetail,
		IndustryManufacturing,
		IndustryOther,
	}
}

// IsValidIndustry reports whether s is a member of the closed enum.
func IsValidIndustry(s string) bool {
	for _, ind := range AllIndustries() {
		if string(ind) == s {
			return true
		}
	}
	return false
}

package types

// StructuredQuery is the closed-schema filter descriptor derived from a
// natural-language question. The zero value matches every profile. Fields are
// combined with AND by the executor; string fields are case-insensitive
// substring matches, industry is an exact enum match, graduation year is an
// inclusive range.
type StructuredQuery struct {
	Name              string `json:"name,omitempty"`
	Industry          string `json:"industry,omitempty"`
	Company           string `json:"company,omitempty"`
	Location          string `json:"location,omitempty"`
	GraduationYearMin int    `json:"graduation_year_min,omitempty"`
	GraduationYearMax int    `json:"graduation_year_max,omitempty"`
}

// IsEmpty reports whether no filter is set (match-all).
func (q StructuredQuery) IsEmpty() bool {
	return q == (StructuredQuery{})
}

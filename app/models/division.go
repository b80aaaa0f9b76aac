package models

// DivisionLevel is the administrative level a candidate was registered at.
type DivisionLevel string

const (
	LevelProvince DivisionLevel = "province"
	LevelCity     DivisionLevel = "city"
	LevelDistrict DivisionLevel = "district"
)

// DivisionCandidate is one possible administrative division behind an alias
// or a postal code. The same alias may map to several candidates (district
// names repeat across provinces), so resolution ranks candidates instead of
// assuming uniqueness.
type DivisionCandidate struct {
	Level      DivisionLevel `json:"level"`
	Province   string        `json:"province"`
	City       string        `json:"city,omitempty"`
	District   string        `json:"district,omitempty"`
	PostalCode string        `json:"postal_code,omitempty"`
	Lat        *float64      `json:"lat,omitempty"`
	Lng        *float64      `json:"lng,omitempty"`
}

// Key returns a stable identity string used as the deterministic final
// tie-break when every ranking criterion is equal.
func (dc *DivisionCandidate) Key() string {
	return dc.Province + "/" + dc.City + "/" + dc.District
}

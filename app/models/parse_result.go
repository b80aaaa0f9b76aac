package models

// ParseResult là kết quả chuẩn hóa một địa chỉ — the flat object returned to
// the caller. Nullable fields are pointers so absent values serialize as
// JSON null rather than "". A ParseResult is built fresh per call and never
// mutated after return.
type ParseResult struct {
	Province *string `json:"province"`
	City     *string `json:"city"`
	District *string `json:"district"`

	// Street is what remains after the resolved divisions and their short
	// forms are stripped from the front of the residual text.
	Street string `json:"street"`

	// InputPostal is the postal code extracted from the raw text, if any.
	// PostalCode is the code we recommend using: the input code when it
	// agrees with the resolved area, otherwise the registered district code
	// or a province-level fallback.
	InputPostal    *string `json:"input_postal"`
	PostalCode     *string `json:"postal_code"`
	PostalMismatch bool    `json:"postal_mismatch"`

	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`

	Recipient *string `json:"recipient"`
	Phone     *string `json:"phone"`

	NormalizedCN string `json:"normalized_cn"`
	NormalizedEN string `json:"normalized_en"`

	Deliverable bool    `json:"deliverable"`
	Confidence  float64 `json:"confidence"`
	NeedsDetail bool    `json:"needs_detail"`
}

// Detail level of the street string.
const (
	DetailNone     = "none"
	DetailBuilding = "building"
	DetailUnit     = "unit"
)

// StrPtr returns a pointer to s, or nil when s is empty. Extractors and the
// resolver use "" internally for "absent"; the response contract uses null.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrVal dereferences p, treating nil as "".
func StrVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

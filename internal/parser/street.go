package parser

import (
	"strings"

	"github.com/cn-address-parser/internal/refdata"
)

// StripDivisionPrefix removes leading administrative boilerplate from the
// residual text: any alias of the resolved province/city/district, longest
// first, stripped repeatedly from the FRONT only. Mid-string occurrences
// stay — a campus or company name containing a province name is part of
// the street detail, not boilerplate.
func StripDivisionPrefix(text, province, city, district string) string {
	aliases := refdata.AliasesForNames(province, city, district)
	if len(aliases) == 0 {
		return text
	}
	for {
		stripped := false
		for _, alias := range aliases {
			if strings.HasPrefix(text, alias) {
				text = text[len(alias):]
				stripped = true
				break
			}
		}
		if !stripped {
			return text
		}
	}
}

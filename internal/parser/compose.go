package parser

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/mozillazg/go-unidecode"
)

// countrySuffix closes every romanized address.
const countrySuffix = "China"

var pinyinArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	// Keep non-Han runes so digits and latin fragments survive romanization.
	a.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}
	return a
}()

// Romanize chuyển chuỗi tiếng Trung sang Latin. Han runes become capitalized
// pinyin syllables run together ("昌平" → "ChangPing", matching the
// transliteration style of the reference data); anything else goes through
// ASCII transliteration untouched.
func Romanize(s string) string {
	var b strings.Builder
	for _, part := range pinyin.LazyConvert(s, &pinyinArgs) {
		if part == "" {
			continue
		}
		if part[0] >= 'a' && part[0] <= 'z' {
			b.WriteString(strings.ToUpper(part[:1]))
			b.WriteString(part[1:])
			continue
		}
		b.WriteString(unidecode.Unidecode(part))
	}
	return strings.TrimSpace(b.String())
}

// ComposeCN builds the canonical Chinese address string: province, city
// (omitted when it repeats the province), district, street — concatenated
// without separators.
func ComposeCN(province, city, district, street string) string {
	var b strings.Builder
	b.WriteString(province)
	if city != "" && city != province {
		b.WriteString(city)
	}
	b.WriteString(district)
	b.WriteString(street)
	return b.String()
}

// ComposeEN builds the romanized address, most specific part first, closed
// by the recommended postal code and the country.
func ComposeEN(province, city, district, street, postal string) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	add(Romanize(street))
	add(Romanize(district))
	if city != province {
		add(Romanize(city))
	}
	add(Romanize(province))
	add(postal)
	add(countrySuffix)
	return strings.Join(parts, ", ")
}

// Package extract pulls structured fields (phone, postal code, recipient)
// out of raw address text. Every extractor is a chain of independent
// strategies tried in priority order; each returns the residual text with
// the matched span replaced by a separator, never an error — a field that
// cannot be found simply stays empty.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Separator punctuation commonly glueing address segments together.
var separatorReplacer = strings.NewReplacer(
	",", " ",
	"，", " ",
	";", " ",
	"；", " ",
	"。", " ",
	"｡", " ",
	"|", " ",
	"/", " ",
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

var spacesPattern = regexp.MustCompile(`\s+`)

// Clean prepares raw input for extraction: folds full-width ASCII to
// half-width (full-width digits are common in pasted addresses and would
// otherwise hide phone and postal runs), maps separator punctuation to
// spaces and collapses whitespace.
func Clean(text string) string {
	folded := width.Narrow.String(text)
	folded = separatorReplacer.Replace(folded)
	folded = spacesPattern.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// StripSpaces removes all whitespace. Alias matching and street
// normalization run over the compact form since Chinese text carries no
// meaningful spaces.
func StripSpaces(text string) string {
	return spacesPattern.ReplaceAllString(text, "")
}

// isDigitAt reports whether the byte at i is an ASCII digit. Safe on UTF-8
// boundaries: continuation bytes never look like digits.
func isDigitAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// cut replaces the span [start,end) with a single space so that token
// boundaries around the removed field survive for later extractors.
func cut(text string, start, end int) string {
	return text[:start] + " " + text[end:]
}

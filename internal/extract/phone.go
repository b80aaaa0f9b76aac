package extract

import "regexp"

// Mainland mobile numbers: 11 digits, 1[3-9] prefix.
var mobilePattern = regexp.MustCompile(`1[3-9][0-9]{9}`)

// Phone extracts the first mainland mobile number. It runs before the
// postal extractor so an 11-digit phone is never mistaken for a 6-digit
// postal code. Digit runs glued to more digits are skipped.
func Phone(text string) (residual, phone string) {
	for _, loc := range mobilePattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if isDigitAt(text, start-1) || isDigitAt(text, end) {
			continue
		}
		return cut(text, start, end), text[start:end]
	}
	return text, ""
}

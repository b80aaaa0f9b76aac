package extract

import "regexp"

var (
	// A labeled code (邮编/邮政编码 marker) is trusted over any bare digit
	// run; the marker itself is removed along with the code.
	labeledPostalPattern = regexp.MustCompile(`(?:邮政编码|邮编)[:：]?\s*([0-9]{6})`)

	barePostalPattern = regexp.MustCompile(`[0-9]{6}`)
)

// Postal extracts a candidate 6-digit postal code. Labeled codes win;
// otherwise the LAST standalone 6-digit run is taken — people append the
// code at the end, and house/room numbers earlier in the text can also be
// six digits long. Runs embedded in longer digit sequences are ignored.
func Postal(text string) (residual, code string) {
	if m := labeledPostalPattern.FindStringSubmatchIndex(text); m != nil {
		return cut(text, m[0], m[1]), text[m[2]:m[3]]
	}

	matches := barePostalPattern.FindAllStringIndex(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		start, end := matches[i][0], matches[i][1]
		if isDigitAt(text, start-1) || isDigitAt(text, end) {
			continue
		}
		return cut(text, start, end), text[start:end]
	}
	return text, ""
}

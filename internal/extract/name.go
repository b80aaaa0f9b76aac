package extract

import (
	"regexp"
	"strings"
)

var (
	markerNamePattern = regexp.MustCompile(`(?:收件人|收货人|联系人)[:：]?\s*(\p{Han}{2,4})`)
	shouNamePattern   = regexp.MustCompile(`(\p{Han}{2,4})收`)
	hanRunPattern     = regexp.MustCompile(`\p{Han}{2,4}`)
	digitsOnly        = regexp.MustCompile(`^[0-9]{5,}$`)
)

// Runes that belong to the building/unit part of an address. A candidate
// picked up right after a house number often drags one along ("102号张三"
// yields 号张三); they are trimmed from the front only.
const structuralRunes = "号楼栋幢座室层单元巷弄"

// Suffix runes that mark a place word, not a person. Division short forms
// and street words are 2-4 Han characters too, so a candidate ending in one
// of these is rejected and the search moves on.
const placeSuffixRunes = "省市区县旗镇乡村庄路街道巷里弄园区号楼栋"

var nameBlacklist = map[string]bool{
	"收件人": true,
	"收货人": true,
	"联系人": true,
	"先生":  true,
	"女士":  true,
	"电话":  true,
	"手机":  true,
	"邮编":  true,
	"地址":  true,
	"中国":  true,
}

// Recipient extracts the recipient name. Strategies in priority order: an
// explicit marker (收件人:XXX or XXX收), a 2-4 character run immediately
// preceding a digit run or the end of the text, then a token fallback for
// "name <long digit run>" tails. Recipients trail the address in practice,
// so the positional strategies scan from the right.
func Recipient(text string) (residual, name string) {
	if m := markerNamePattern.FindStringSubmatchIndex(text); m != nil {
		if n, ok := cleanName(text[m[2]:m[3]]); ok {
			return cut(text, m[0], m[1]), n
		}
	}

	for _, m := range shouNamePattern.FindAllStringSubmatchIndex(text, -1) {
		if !beforeDigitsOrEnd(text, m[1]) {
			continue
		}
		if n, ok := cleanName(text[m[2]:m[3]]); ok {
			return cut(text, m[0], m[1]), n
		}
	}

	runs := hanRunPattern.FindAllStringIndex(text, -1)
	for i := len(runs) - 1; i >= 0; i-- {
		start, end := runs[i][0], runs[i][1]
		if !boundaryBefore(text, start) || !beforeDigitsOrEnd(text, end) {
			continue
		}
		if n, ok := cleanName(text[start:end]); ok {
			return cut(text, start, end), n
		}
	}

	// Landline-style tails the earlier extractors left alone: a short Han
	// token right before a trailing digit run.
	tokens := strings.Fields(text)
	if len(tokens) >= 2 && digitsOnly.MatchString(tokens[len(tokens)-1]) {
		cand := tokens[len(tokens)-2]
		if n, ok := cleanName(cand); ok {
			if at := strings.LastIndex(text, cand); at >= 0 {
				return cut(text, at, at+len(cand)), n
			}
		}
	}
	return text, ""
}

// cleanName trims leading structural runes and validates what is left.
func cleanName(raw string) (string, bool) {
	runes := []rune(raw)
	for len(runes) > 0 && strings.ContainsRune(structuralRunes, runes[0]) {
		runes = runes[1:]
	}
	if len(runes) < 2 || len(runes) > 4 {
		return "", false
	}
	name := string(runes)
	if nameBlacklist[name] {
		return "", false
	}
	if strings.ContainsRune(placeSuffixRunes, runes[len(runes)-1]) {
		return "", false
	}
	return name, true
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || s[i-1] == ' ' || isDigitAt(s, i-1)
}

// beforeDigitsOrEnd skips separator spaces (extractor cuts leave them
// behind) and requires a digit or the end of the text next.
func beforeDigitsOrEnd(s string, i int) bool {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i == len(s) || isDigitAt(s, i)
}

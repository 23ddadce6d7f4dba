package util

import (
	"regexp"
	"strings"
)

var (
	nameBrackets = regexp.MustCompile(`[\*\.\[\{\]\}\(\)]`)
	nameSuffix   = regexp.MustCompile(`\b(Ltd|Limited)\b`)
	nameSpaces   = regexp.MustCompile(`\s{2,}`)
)

// CleanText folds non-breaking spaces and whitespace runs into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// SanitizeCompanyName turns a register name into a search seed. Anything
// that is not a string yields "".
func SanitizeCompanyName(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = nameBrackets.ReplaceAllString(s, " ")
	s = nameSuffix.ReplaceAllString(s, "")
	s = nameSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

package utils

import (
	"strings"
	"unicode"
)

// PrepareQuery turns raw user input into a query: control characters and
// the trailing newline are dropped, letters are lower-cased and the result
// is cut to maxLen runes. A maxLen < 1 means no cap.
func PrepareQuery(raw string, maxLen int) string {
	raw = strings.TrimRight(raw, "\r\n")

	var b strings.Builder
	b.Grow(len(raw))
	n := 0
	for _, r := range raw {
		if unicode.IsControl(r) && r != '\t' {
			continue
		}
		if maxLen > 0 && n == maxLen {
			break
		}
		b.WriteRune(unicode.ToLower(r))
		n++
	}
	return b.String()
}

// IsCommand reports whether an input line is a CLI command such as :rules
func IsCommand(s string) bool {
	return strings.HasPrefix(s, ":")
}

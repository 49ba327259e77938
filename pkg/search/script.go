package search

import (
	"unicode"

	"github.com/toqtoga/bicig-toli/pkg/translit"
)

// IsLatinQuery reports whether q is typed in Latin transliteration: it is
// not empty and holds only Latin letters (ö ü č š ž included) and
// whitespace. Anything else, Cyrillic in particular, is not.
func IsLatinQuery(q string) bool {
	if q == "" {
		return false
	}
	for _, r := range q {
		if !translit.IsLatinLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

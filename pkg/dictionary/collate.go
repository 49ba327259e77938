package dictionary

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation is the language used to order headwords alphabetically.
var Collation = language.Mongolian

// NewCollator returns a collator for Mongolian Cyrillic headwords.
// A Collator keeps internal buffers, so each goroutine needs its own.
func NewCollator() *collate.Collator {
	return collate.New(Collation)
}

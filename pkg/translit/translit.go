/*
Package translit romanizes traditional Mongolian script.

Two renderings are produced from the same table. The strict one keeps the
phonemic distinctions of the script (u/ü, t/d, variation selectors). The
normalized one collapses them so that a Latin query typed by ear still finds
the headword:

	ᠤ u → o    ᠦ ü → ö    ᠲ t → d
	ᠭᠡ / ᠬᠡ (ge/qe) → he, word-initially and word-medially

Runes outside the table are copied unchanged, so ToLatin is total over all
strings and never fails.
*/
package translit

import (
	"strings"
	"unicode"
)

// Rendering holds both romanizations of one headword.
type Rendering struct {
	Normalized string
	Strict     string
}

// ToLatin romanizes text. When normalize is true the normalized table is used
// and the ge/qe → he rewrite is applied.
func ToLatin(text string, normalize bool) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if out, ok := lookup(r, normalize); ok {
			b.WriteString(out)
			continue
		}
		b.WriteRune(r)
	}

	if !normalize {
		return b.String()
	}
	return rewriteHe(b.String())
}

// Render returns both romanizations of text.
func Render(text string) Rendering {
	return Rendering{
		Normalized: ToLatin(text, true),
		Strict:     ToLatin(text, false),
	}
}

// IsLatinLetter reports whether r belongs to the romanization alphabet,
// a-z plus ö ü č š ž, in either case.
func IsLatinLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	switch r {
	case 'ö', 'ü', 'č', 'š', 'ž', 'Ö', 'Ü', 'Č', 'Š', 'Ž':
		return true
	}
	return false
}

// rewriteHe replaces ge and qe (any case) with "he" when the digraph starts
// the string, follows whitespace or follows a Latin letter.
//
// Replacing g/q with h never changes whether the rune is a letter, so one
// left-to-right scan that looks at the preceding rune covers all three
// positions, including back-to-back digraphs such as "gege".
func rewriteHe(s string) string {
	if !strings.ContainsAny(s, "gGqQ") {
		return s
	}

	rs := []rune(s)
	changed := false
	for i := 0; i+1 < len(rs); i++ {
		switch rs[i] {
		case 'g', 'G', 'q', 'Q':
		default:
			continue
		}
		if rs[i+1] != 'e' && rs[i+1] != 'E' {
			continue
		}
		if i > 0 && !unicode.IsSpace(rs[i-1]) && !IsLatinLetter(rs[i-1]) {
			continue
		}
		rs[i], rs[i+1] = 'h', 'e'
		changed = true
		i++
	}

	if !changed {
		return s
	}
	return string(rs)
}

// Rules lists the normalization rules in the order they are applied.
func Rules() []string {
	return []string{
		"ᠤ (u) → o, ᠦ (ü) → ö",
		"ᠲ (t) → d, ᠳ (d) → d",
		"initial ᠬᠡ / ᠭᠡ (qe/ge) → he",
		"medial ᠬᠡ / ᠭᠡ (qe/ge) → he",
		"variation selectors and the vowel separator are dropped",
	}
}

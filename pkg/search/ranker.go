package search

import (
	"bytes"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"

	"github.com/toqtoga/bicig-toli/pkg/dictionary"
	"github.com/toqtoga/bicig-toli/pkg/distance"
)

// Ranker orders hits for one query. Rules are tried in turn and the first
// that tells two entries apart decides:
//
//  1. text equal to the query
//  2. text starting with the query
//  3. text containing the query
//  4. earlier match position, when both contain the query
//  5. text starting with the query's first letter
//  6. smaller edit distance
//  7. Mongolian alphabetical order of the Cyrillic headwords
//
// The text compared is the one Matcher.Text picks. A Ranker holds a
// collator and must not be shared between goroutines.
type Ranker struct {
	m     Matcher
	first rune // utf8.RuneError when the query is empty
	col   *collate.Collator
	buf   collate.Buffer
}

// rankKey holds what rules 1 to 6 need for one entry.
type rankKey struct {
	exact    bool
	prefix   bool
	contains bool
	index    int // rune offset of the match, -1 if none
	initial  bool
	dist     int
}

// NewRanker binds a query and its options.
func NewRanker(query string, opts Options) *Ranker {
	m := NewMatcher(query, opts)
	first := utf8.RuneError
	if m.query != "" {
		first, _ = utf8.DecodeRuneInString(m.query)
	}
	return &Ranker{
		m:     m,
		first: first,
		col:   dictionary.NewCollator(),
	}
}

func (r *Ranker) key(e Entry) rankKey {
	text := r.m.Text(e)
	q := r.m.query

	k := rankKey{
		exact:  text == q,
		prefix: strings.HasPrefix(text, q),
		index:  -1,
		dist:   distance.Levenshtein(q, text),
	}
	if i := strings.Index(text, q); i >= 0 {
		k.contains = true
		k.index = utf8.RuneCountInString(text[:i])
	}
	if q != "" {
		c, _ := utf8.DecodeRuneInString(text)
		k.initial = text != "" && c == r.first
	}
	return k
}

// preferTrue ranks the entry for which the rule holds first.
func preferTrue(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareKeys applies rules 1 to 6.
func compareKeys(a, b rankKey) int {
	if c := preferTrue(a.exact, b.exact); c != 0 {
		return c
	}
	if c := preferTrue(a.prefix, b.prefix); c != 0 {
		return c
	}
	if c := preferTrue(a.contains, b.contains); c != 0 {
		return c
	}
	if a.contains && b.contains {
		if c := compareInts(a.index, b.index); c != 0 {
			return c
		}
	}
	if c := preferTrue(a.initial, b.initial); c != 0 {
		return c
	}
	return compareInts(a.dist, b.dist)
}

// Compare returns -1 when a ranks before b, 1 when after and 0 when the two
// are indistinguishable.
func (r *Ranker) Compare(a, b Entry) int {
	if c := compareKeys(r.key(a), r.key(b)); c != 0 {
		return c
	}
	return r.col.CompareString(a.Cyrillic, b.Cyrillic)
}

// Sort orders entries in place. Keys are computed once per entry; ties on
// every rule keep their input order.
func (r *Ranker) Sort(entries []Entry) {
	if len(entries) < 2 {
		return
	}

	type decorated struct {
		entry  Entry
		key    rankKey
		colKey []byte
	}

	r.buf.Reset()
	items := make([]decorated, len(entries))
	for i, e := range entries {
		items[i] = decorated{
			entry:  e,
			key:    r.key(e),
			colKey: r.col.KeyFromString(&r.buf, e.Cyrillic),
		}
	}

	slices.SortStableFunc(items, func(a, b decorated) int {
		if c := compareKeys(a.key, b.key); c != 0 {
			return c
		}
		return bytes.Compare(a.colKey, b.colKey)
	})

	for i := range items {
		entries[i] = items[i].entry
	}
}

package search

import (
	"strings"

	"github.com/toqtoga/bicig-toli/pkg/distance"
	"github.com/toqtoga/bicig-toli/pkg/translit"
)

// Matcher decides whether an entry is a hit for one query. The query script
// is classified once, at construction. A Matcher is a plain value and may be
// used from several goroutines.
type Matcher struct {
	query       string
	latin       bool
	normalize   bool
	maxDistance int
}

// NewMatcher binds a lower-cased query and its options.
func NewMatcher(query string, opts Options) Matcher {
	q := strings.ToLower(query)
	return Matcher{
		query:       q,
		latin:       IsLatinQuery(q),
		normalize:   opts.normalize(),
		maxDistance: opts.MaxDistance,
	}
}

// Query returns the lower-cased query.
func (m Matcher) Query() string {
	return m.query
}

// IsLatin reports whether the query was classified as Latin.
func (m Matcher) IsLatin() bool {
	return m.latin
}

// Text returns the lower-cased text of e that the query is compared with:
// the Cyrillic headword, or the romanized traditional one for Latin queries.
func (m Matcher) Text(e Entry) string {
	if m.latin {
		return strings.ToLower(translit.ToLatin(e.Traditional, m.normalize))
	}
	return strings.ToLower(e.Cyrillic)
}

// Match reports whether e contains the query or is within the edit limit.
// The empty query is contained in everything, so it matches every entry.
func (m Matcher) Match(e Entry) bool {
	text := m.Text(e)
	return strings.Contains(text, m.query) || distance.Within(m.query, text, m.maxDistance)
}

package dictionary

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Glossary is an alphabetical browsing view over a dictionary: the list of
// initials and the headwords filed under an initial or prefix.
// It is built once and only read afterwards.
type Glossary struct {
	trie     *patricia.Trie // lower-cased Cyrillic headword -> []int positions in sorted
	sorted   []Entry
	initials []string
}

// NewGlossary orders the entries of d by Mongolian collation and indexes
// their Cyrillic headwords. Entries without a Cyrillic headword are left out.
func NewGlossary(d *Dictionary) *Glossary {
	col := NewCollator()

	sorted := make([]Entry, 0, d.Len())
	for _, e := range d.Entries() {
		if e.Cyrillic != "" {
			sorted = append(sorted, e)
		}
	}
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return col.CompareString(a.Cyrillic, b.Cyrillic)
	})

	g := &Glossary{
		trie:   patricia.NewTrie(),
		sorted: sorted,
	}

	seen := make(map[string]bool)
	for i, e := range sorted {
		key := strings.ToLower(e.Cyrillic)

		if item := g.trie.Get(patricia.Prefix(key)); item != nil {
			g.trie.Set(patricia.Prefix(key), append(item.([]int), i))
		} else {
			g.trie.Insert(patricia.Prefix(key), []int{i})
		}

		r, _ := utf8.DecodeRuneInString(key)
		initial := string(r)
		if !seen[initial] {
			seen[initial] = true
			g.initials = append(g.initials, initial)
		}
	}

	log.Debugf("Glossary built with %d headwords, %d initials", len(sorted), len(g.initials))
	return g
}

// Initials returns the distinct first letters of the headwords in
// alphabetical order.
func (g *Glossary) Initials() []string {
	return slices.Clone(g.initials)
}

// Words returns the headwords starting with prefix in alphabetical order,
// paginated by offset and limit, along with the total number of matches.
// An empty prefix lists the whole glossary. A limit < 1 returns every match.
func (g *Glossary) Words(prefix string, offset, limit int) ([]Entry, int) {
	prefix = strings.ToLower(prefix)

	var positions []int
	if prefix == "" {
		positions = make([]int, len(g.sorted))
		for i := range positions {
			positions[i] = i
		}
	} else {
		err := g.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
			positions = append(positions, item.([]int)...)
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting glossary subtree: %v", err)
			return nil, 0
		}
		sort.Ints(positions)
	}

	total := len(positions)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []Entry{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	out := make([]Entry, 0, end-offset)
	for _, p := range positions[offset:end] {
		out = append(out, g.sorted[p])
	}
	return out, total
}

// Len returns the number of browsable headwords.
func (g *Glossary) Len() int {
	return len(g.sorted)
}

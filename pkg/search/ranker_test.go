package search

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankerRules(t *testing.T) {
	testCases := []struct {
		rule   string
		query  string
		better string
		worse  string
	}{
		{"exact", "тамир", "тамир", "тамирын"},
		{"prefix", "та", "тал", "ахта"},
		{"contains", "тамир", "хүч тамир", "тамар"},
		{"earlier match", "ам", "тамга", "халам"},
		{"same initial", "тамир", "тоор", "самир"},
		{"distance", "тамир", "тамар", "тамгаг"},
		{"alphabetical", "ш", "ав", "бо"},
	}

	for _, tc := range testCases {
		t.Run(tc.rule, func(t *testing.T) {
			r := NewRanker(tc.query, DefaultOptions())
			a, b := Entry{Cyrillic: tc.better}, Entry{Cyrillic: tc.worse}
			assert.Equal(t, -1, r.Compare(a, b))
			assert.Equal(t, 1, r.Compare(b, a))
		})
	}
}

func TestRankerCompareIsConsistent(t *testing.T) {
	dataset := append(cyr("тамир", "Тамир", "хүч тамир", "самир", "тамирын"), randomDataset(60, 11)...)

	for _, q := range []string{"тамир", "ам", ""} {
		r := NewRanker(q, DefaultOptions())
		for _, a := range dataset {
			assert.Equal(t, 0, r.Compare(a, a))
			for _, b := range dataset {
				assert.Equal(t, r.Compare(a, b), -r.Compare(b, a), "%q vs %q for %q", a.Cyrillic, b.Cyrillic, q)
			}
		}
	}
}

// Sort must agree with sorting by Compare directly.
func TestRankerSortMatchesCompare(t *testing.T) {
	dataset := randomDataset(400, 5)

	for _, q := range []string{"там", "ир", "х"} {
		r := NewRanker(q, DefaultOptions())

		want := slices.Clone(dataset)
		slices.SortStableFunc(want, r.Compare)

		got := slices.Clone(dataset)
		r.Sort(got)

		assert.Equal(t, headwords(want), headwords(got), q)
	}
}

func TestRankerLatin(t *testing.T) {
	r := NewRanker("mongol", DefaultOptions())

	exact := Entry{Cyrillic: "монгол", Traditional: "ᠮᠣᠩᠣᠯ"}
	fuzzy := Entry{Cyrillic: "монггол", Traditional: "ᠮᠣᠩᠭᠣᠯ"}
	assert.Equal(t, -1, r.Compare(exact, fuzzy))
}

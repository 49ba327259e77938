package search

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func cyr(words ...string) []Entry {
	out := make([]Entry, len(words))
	for i, w := range words {
		out[i] = Entry{Cyrillic: w}
	}
	return out
}

func headwords(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Cyrillic
	}
	return out
}

// randomDataset builds n pseudo-words over a small Cyrillic alphabet so that
// many of them share substrings.
func randomDataset(n int, seed int64) []Entry {
	alphabet := []rune("тамирхгцлчн")
	rng := rand.New(rand.NewSource(seed))
	out := make([]Entry, n)
	for i := range out {
		rs := make([]rune, 2+rng.Intn(7))
		for j := range rs {
			rs[j] = alphabet[rng.Intn(len(alphabet))]
		}
		out[i] = Entry{Cyrillic: string(rs)}
	}
	return out
}

func TestIsLatinQuery(t *testing.T) {
	testCases := []struct {
		query    string
		expected bool
	}{
		{"mongol", true},
		{"Mongol", true},
		{"öndör šar", true},
		{"ČŽ", true},
		{" ", true},
		{"", false},
		{"тамир", false},
		{"mongol1", false},
		{"ᠮᠣᠩᠭᠣᠯ", false},
		{"tamir-a", false},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsLatinQuery(tc.query))
		})
	}
}

func TestMatcherReflexive(t *testing.T) {
	for _, e := range append(cyr("тамир", "Тамгалах", "хүч тамир"), randomDataset(200, 1)...) {
		assert.True(t, NewMatcher(e.Cyrillic, DefaultOptions()).Match(e), e.Cyrillic)
	}
}

func TestMatcherCyrillic(t *testing.T) {
	m := NewMatcher("ТАМИР", DefaultOptions())
	assert.False(t, m.IsLatin())
	assert.Equal(t, "тамир", m.Query())

	assert.True(t, m.Match(Entry{Cyrillic: "Тамирчин"}), "case-insensitive containment")
	assert.True(t, m.Match(Entry{Cyrillic: "самар"}), "two edits")
	assert.False(t, m.Match(Entry{Cyrillic: "цамхаг"}), "four edits")
	assert.False(t, m.Match(Entry{Traditional: "ᠲᠠᠮᠢᠷ"}), "Cyrillic queries ignore the traditional headword")
}

func TestMatcherLatin(t *testing.T) {
	mongol := Entry{Cyrillic: "монгол", Traditional: "ᠮᠣᠩᠣᠯ"}

	m := NewMatcher("mongol", DefaultOptions())
	require.True(t, m.IsLatin())
	assert.Equal(t, "mongol", m.Text(mongol))
	assert.True(t, m.Match(mongol))
	assert.True(t, NewMatcher("Mongol", DefaultOptions()).Match(mongol))
	assert.True(t, m.Match(Entry{Traditional: "ᠮᠣᠩᠭᠣᠯ"}), "monggol is one edit away")
	assert.False(t, m.Match(Entry{Cyrillic: "монгол"}), "Latin queries ignore the Cyrillic headword")
}

func TestMatcherStrict(t *testing.T) {
	tamir := Entry{Cyrillic: "тамир", Traditional: "ᠲᠠᠮᠢᠷ"}
	substringOnly := Options{MaxDistance: -1}

	assert.True(t, NewMatcher("damir", substringOnly).Match(tamir))
	assert.False(t, NewMatcher("tamir", substringOnly).Match(tamir))

	substringOnly.Strict = true
	assert.True(t, NewMatcher("tamir", substringOnly).Match(tamir))
	assert.False(t, NewMatcher("damir", substringOnly).Match(tamir))
}

func TestMatcherNegativeDistance(t *testing.T) {
	m := NewMatcher("тамир", Options{MaxDistance: -1})
	assert.False(t, m.Match(Entry{Cyrillic: "тамар"}))
	assert.True(t, m.Match(Entry{Cyrillic: "хүч тамир"}))
}

func TestSearchScenario(t *testing.T) {
	dataset := []Entry{
		{Cyrillic: "тамир", Traditional: "ᠲᠠᠮᠢᠷ"},
		{Cyrillic: "тамгалах", Traditional: "ᠲᠠᠮᠠᠭᠠᠯᠠᠬᠤ"},
		{Cyrillic: "цамхаг", Traditional: "ᠴᠠᠮᠬᠠᠭ"},
	}

	hits := Search(dataset, "тамир", DefaultOptions())
	require.NotEmpty(t, hits)
	assert.Equal(t, "тамир", hits[0].Cyrillic)
	assert.LessOrEqual(t, len(hits), DefaultLimit)
}

func TestSearchOrder(t *testing.T) {
	dataset := cyr("самир", "цамхаг", "хүч тамир", "тамирчин", "тамгалах", "тамар", "тамир", "тамирын")

	hits := Search(dataset, "тамир", DefaultOptions())
	assert.Equal(t, []string{
		"тамир",     // exact
		"тамирын",   // prefix, 2 edits
		"тамирчин",  // prefix, 3 edits
		"хүч тамир", // contains
		"тамар",     // 1 edit, same initial
		"самир",     // 1 edit
	}, headwords(hits))
}

func TestSearchPrefixBeatsContainment(t *testing.T) {
	hits := Search(cyr("ахта", "тал"), "та", DefaultOptions())
	assert.Equal(t, []string{"тал", "ахта"}, headwords(hits))
}

func TestSearchLatinRoundTrip(t *testing.T) {
	dataset := []Entry{
		{Cyrillic: "тамир", Traditional: "ᠲᠠᠮᠢᠷ"},
		{Cyrillic: "монгол", Traditional: "ᠮᠣᠩᠣᠯ"},
	}

	require.True(t, IsLatinQuery("mongol"))
	hits := Search(dataset, "mongol", DefaultOptions())
	require.Len(t, hits, 1)
	assert.Equal(t, "монгол", hits[0].Cyrillic)
}

func TestSearchLimit(t *testing.T) {
	var dataset []Entry
	for i := 0; i < 30; i++ {
		dataset = append(dataset, Entry{Cyrillic: fmt.Sprintf("тамир%d", i)})
	}

	assert.Len(t, Search(dataset, "тамир", DefaultOptions()), DefaultLimit)
	assert.Len(t, Search(dataset, "тамир", Options{MaxDistance: 3}), DefaultLimit, "zero limit means default")
	assert.Len(t, Search(dataset, "тамир", Options{MaxDistance: 3, Limit: 5}), 5)
	assert.Len(t, Search(dataset, "тамир", Options{MaxDistance: 3, Limit: 100}), 30)
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	hits := Search(cyr("цамхаг", "тамир", "бор"), "", DefaultOptions())
	// Every entry ties on containment, so shorter headwords come first.
	assert.Equal(t, []string{"бор", "тамир", "цамхаг"}, headwords(hits))
}

func TestSearchNoHits(t *testing.T) {
	assert.Empty(t, Search(cyr("тамир", "цамхаг"), "шшшшшшшш", DefaultOptions()))
	assert.Empty(t, Search(nil, "тамир", DefaultOptions()))
}

func TestSearchDoesNotModifyDataset(t *testing.T) {
	dataset := cyr("самир", "тамир", "хүч тамир")
	Search(dataset, "тамир", DefaultOptions())
	assert.Equal(t, []string{"самир", "тамир", "хүч тамир"}, headwords(dataset))
}

func TestSearchParallelMatchesSequential(t *testing.T) {
	dataset := randomDataset(3000, 42)

	for _, q := range []string{"там", "тамир", "хг", "ир", "цлч", ""} {
		t.Run(q, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Limit = 1000
			sequential := Search(dataset, q, opts)

			for _, workers := range []int{2, 3, 8} {
				opts.Workers = workers
				assert.Equal(t, sequential, Search(dataset, q, opts), "workers=%d", workers)
			}
		})
	}
}

func TestSearchContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		opts := DefaultOptions()
		opts.Workers = workers
		hits, err := SearchContext(ctx, randomDataset(1000, 3), "там", opts)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, hits)
	}
}

func BenchmarkSearch(b *testing.B) {
	dataset := randomDataset(10000, 7)
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Search(dataset, "тамир", opts)
	}
}

func BenchmarkSearchParallelFilter(b *testing.B) {
	dataset := randomDataset(10000, 7)
	opts := DefaultOptions()
	opts.Workers = 4

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Search(dataset, "тамир", opts)
	}
}

func BenchmarkSearchLatin(b *testing.B) {
	dataset := []Entry{
		{Cyrillic: "тамир", Traditional: "ᠲᠠᠮᠢᠷ"},
		{Cyrillic: "монгол", Traditional: "ᠮᠣᠩᠭᠣᠯ"},
		{Cyrillic: "цамхаг", Traditional: "ᠴᠠᠮᠬᠠᠭ"},
	}
	for len(dataset) < 5000 {
		dataset = append(dataset, dataset[:3]...)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Search(dataset, "mongol", DefaultOptions())
	}
}

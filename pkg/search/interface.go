// Package search is the query side of the glossary: it decides which entries
// match a query and in what order they are shown.
//
// A query is either typed in Cyrillic, in which case it is compared with the
// Cyrillic headwords, or in Latin transliteration, in which case it is
// compared with the romanized traditional headwords. An entry matches when
// its comparison text contains the query or lies within a small edit
// distance of it.
package search

import (
	"context"

	"github.com/toqtoga/bicig-toli/pkg/dictionary"
)

// Entry is a glossary record.
type Entry = dictionary.Entry

// Searcher defines the interface drivers use to run queries
type Searcher interface {
	// Search returns the ranked hits for query, at most opts.Limit of them
	Search(ctx context.Context, query string, opts Options) ([]Entry, error)

	// Defaults returns the options used when a request does not override them
	Defaults() Options

	// Stats returns statistics about the dataset and the result cache
	Stats() map[string]int
}

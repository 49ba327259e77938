package search

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/toqtoga/bicig-toli/pkg/dictionary"
)

type cacheKey struct {
	query       string
	maxDistance int
	limit       int
	strict      bool
}

// Engine binds a dictionary and default options, and remembers recent
// results. The dictionary never changes, so cached results never go stale.
type Engine struct {
	dict     *dictionary.Dictionary
	defaults Options
	cache    *lru.Cache[cacheKey, []Entry]
}

// NewEngine creates an engine over d. A cacheSize < 1 disables caching.
func NewEngine(d *dictionary.Dictionary, defaults Options, cacheSize int) (*Engine, error) {
	e := &Engine{dict: d, defaults: defaults}
	if cacheSize > 0 {
		cache, err := lru.New[cacheKey, []Entry](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		e.cache = cache
	}
	log.Debugf("Search engine ready: %d entries, cache size %d", d.Len(), cacheSize)
	return e, nil
}

// Search runs query against the dictionary. The returned slice belongs to
// the caller.
func (e *Engine) Search(ctx context.Context, query string, opts Options) ([]Entry, error) {
	key := cacheKey{
		query:       strings.ToLower(query),
		maxDistance: opts.MaxDistance,
		limit:       opts.limit(),
		strict:      opts.Strict,
	}

	if e.cache != nil {
		if hits, ok := e.cache.Get(key); ok {
			log.Debugf("Cache hit for %q", query)
			return slices.Clone(hits), nil
		}
	}

	hits, err := SearchContext(ctx, e.dict.Entries(), query, opts)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Add(key, slices.Clone(hits))
	}
	return hits, nil
}

// Defaults returns the options the engine was built with.
func (e *Engine) Defaults() Options {
	return e.defaults
}

// Dictionary returns the dataset the engine searches.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

// Stats returns statistics about the dataset and the result cache
func (e *Engine) Stats() map[string]int {
	stats := map[string]int{
		"entries":       e.dict.Len(),
		"maxDistance":   e.defaults.MaxDistance,
		"limit":         e.defaults.limit(),
		"cachedQueries": 0,
	}
	if e.cache != nil {
		stats["cachedQueries"] = e.cache.Len()
	}
	return stats
}

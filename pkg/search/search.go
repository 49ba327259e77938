package search

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// checkEvery is how many entries a filter scans between context checks.
const checkEvery = 256

// Search returns the entries of dataset matching query, best first, at most
// opts.Limit of them. The dataset is scanned in full.
func Search(dataset []Entry, query string, opts Options) []Entry {
	hits, _ := SearchContext(context.Background(), dataset, query, opts)
	return hits
}

// SearchContext is Search with cancellation. A cancelled search returns
// ctx.Err() and no hits.
func SearchContext(ctx context.Context, dataset []Entry, query string, opts Options) ([]Entry, error) {
	hits, err := Filter(ctx, dataset, NewMatcher(query, opts), opts.Workers)
	if err != nil {
		return nil, err
	}

	NewRanker(query, opts).Sort(hits)

	if n := opts.limit(); len(hits) > n {
		hits = hits[:n]
	}
	return hits, nil
}

// Filter returns the entries m matches, in dataset order. With workers > 1
// the dataset is split into that many chunks filtered concurrently.
func Filter(ctx context.Context, dataset []Entry, m Matcher, workers int) ([]Entry, error) {
	if workers <= 1 || len(dataset) < 2*checkEvery {
		return filterChunk(ctx, dataset, m)
	}

	size := (len(dataset) + workers - 1) / workers
	parts := make([][]Entry, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * size
		if lo >= len(dataset) {
			break
		}
		hi := min(lo+size, len(dataset))
		g.Go(func() error {
			part, err := filterChunk(gctx, dataset[lo:hi], m)
			parts[w] = part
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, p := range parts {
		total += len(p)
	}
	hits := make([]Entry, 0, total)
	for _, p := range parts {
		hits = append(hits, p...)
	}
	return hits, nil
}

func filterChunk(ctx context.Context, chunk []Entry, m Matcher) ([]Entry, error) {
	var hits []Entry
	for i, e := range chunk {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if m.Match(e) {
			hits = append(hits, e)
		}
	}
	return hits, nil
}

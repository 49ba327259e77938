package search

const (
	DefaultMaxDistance = 3
	DefaultLimit       = 20
)

// Options tunes a query. Use DefaultOptions rather than the zero value,
// which disallows any edit.
type Options struct {
	// MaxDistance is the largest edit distance still counted as a hit.
	// Negative disables fuzzy matching, leaving substring hits only.
	MaxDistance int
	// Limit caps the number of results. Values < 1 mean DefaultLimit.
	Limit int
	// Strict compares Latin queries with the strict romanization instead
	// of the normalized one.
	Strict bool
	// Workers > 1 filters the dataset in that many chunks concurrently.
	Workers int
}

// DefaultOptions returns normalized matching within 3 edits, 20 results.
func DefaultOptions() Options {
	return Options{
		MaxDistance: DefaultMaxDistance,
		Limit:       DefaultLimit,
	}
}

func (o Options) limit() int {
	if o.Limit < 1 {
		return DefaultLimit
	}
	return o.Limit
}

func (o Options) normalize() bool {
	return !o.Strict
}

package picker

import (
	"github.com/cockroachdb/errors"
)

// DefaultMaxAttempts is the attempt budget used when WithMaxAttempts is not given.
const DefaultMaxAttempts = 1000

var (
	// ErrExhaustedAttempts is returned when no drawn entry satisfied the match predicate.
	ErrExhaustedAttempts = errors.New("run out of attempts")
	// ErrEmptyCollection is returned when picking from a collection without entries.
	ErrEmptyCollection = errors.New("empty collection")
)

// RandomSource supplies the random draws consumed by Pick.
type RandomSource interface {
	// UniformElement returns one element of a non-empty sequence chosen uniformly.
	UniformElement(seq []any) any
	// UniformIndex returns an integer in [lo, hi], both inclusive.
	UniformIndex(lo, hi int) int
}

// Match reports whether a dataset entry is acceptable.
type Match func(entry any) bool

// Options holds the settings of a single pick.
type Options struct {
	Match       Match
	MaxAttempts int
}

// Option defines a function type for applying pick options.
type Option func(*Options)

// WithMatch restricts the pick to entries satisfying match. A nil match picks any entry.
func WithMatch(match Match) Option {
	return func(opts *Options) {
		opts.Match = match
	}
}

// WithMaxAttempts sets the number of draws allowed when a match predicate is set.
// Zero or negative budgets fail without drawing.
func WithMaxAttempts(attempts int) Option {
	return func(opts *Options) {
		opts.MaxAttempts = attempts
	}
}

// Apply builds Options from opts starting at the defaults.
func Apply(opts ...Option) Options {
	options := Options{MaxAttempts: DefaultMaxAttempts}

	for _, apply := range opts {
		apply(&options)
	}

	return options
}

// Pick returns one entry of collection drawn from src.
func Pick(src RandomSource, collection []any, opts ...Option) (any, error) {
	options := Apply(opts...)

	if options.Match == nil {
		if len(collection) == 0 {
			return nil, ErrEmptyCollection
		}

		return src.UniformElement(collection), nil
	}

	if options.MaxAttempts <= 0 {
		return nil, exhausted(options.MaxAttempts)
	}

	if len(collection) == 0 {
		return nil, ErrEmptyCollection
	}

	for range options.MaxAttempts {
		entry := src.UniformElement(collection)
		if options.Match(entry) {
			return entry, nil
		}
	}

	return nil, exhausted(options.MaxAttempts)
}

// Filter returns a new slice with the entries of collection satisfying match,
// in their original order. The input is left untouched.
func Filter(collection []any, match Match) []any {
	out := make([]any, 0, len(collection))

	for _, entry := range collection {
		if match(entry) {
			out = append(out, entry)
		}
	}

	return out
}

func exhausted(attempts int) error {
	return errors.WithDetailf(ErrExhaustedAttempts, "max attempts: %d", attempts)
}

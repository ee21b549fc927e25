// Package picker draws random entries from a dataset collection.
//
// Randomness comes from a RandomSource, so the package has no dependency on a
// particular generator library. Without a match predicate a pick consumes
// exactly one draw. With a predicate, every attempt consumes one draw and the
// first matching entry wins; when the attempt budget runs out the pick fails
// with ErrExhaustedAttempts.
//
//	entry, err := picker.Pick(src, books,
//	    picker.WithMatch(func(e any) bool { return year(e) < 1975 }),
//	    picker.WithMaxAttempts(50),
//	)
//
// A RandomSource is a shared, stateful resource. Picks are deterministic for a
// seeded source and a fixed call sequence; concurrent use is not supported.
package picker

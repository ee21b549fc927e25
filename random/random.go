package random

import (
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
)

// Source is a seedable random engine. It is not safe for concurrent use.
type Source struct {
	faker *gofakeit.Faker
}

// New creates a Source seeded with seed. Equal seeds produce equal draw sequences.
func New(seed uint64) *Source {
	return &Source{faker: seeded(seed)}
}

// NewUnseeded creates a Source seeded from crypto-grade randomness.
func NewUnseeded() *Source {
	return &Source{faker: gofakeit.New(0)}
}

// FromFaker wraps an existing Faker so dataset picks consume its stream.
func FromFaker(faker *gofakeit.Faker) *Source {
	return &Source{faker: faker}
}

// Seed restarts the stream from seed. Holders of the Source observe the new stream.
func (s *Source) Seed(seed uint64) {
	s.faker = seeded(seed)
}

// Faker exposes the underlying Faker for generators that need more than picks.
func (s *Source) Faker() *gofakeit.Faker {
	return s.faker
}

// UniformElement returns an element of seq chosen uniformly. seq must not be empty.
func (s *Source) UniformElement(seq []any) any {
	return seq[s.UniformIndex(0, len(seq)-1)]
}

// UniformIndex returns an integer in [lo, hi], both inclusive.
// A one-value range still consumes a draw.
func (s *Source) UniformIndex(lo, hi int) int {
	return s.faker.IntN(hi-lo+1) + lo
}

// seeded builds a Faker over PCG; gofakeit.New would swap seed 0 for a random one.
func seeded(seed uint64) *gofakeit.Faker {
	return gofakeit.NewFaker(rand.NewPCG(seed, seed), false)
}

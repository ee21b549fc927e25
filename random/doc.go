// Package random provides the seeded random engine used for picking dataset entries.
//
// Source adapts a github.com/brianvoe/gofakeit/v7 Faker to the two draws the
// picker needs, so dataset-backed generators and the rest of gofakeit share a
// single deterministic stream. Every seed, zero included, names one stream.
// Each draw consumes exactly one value of the stream, whatever the range.
package random

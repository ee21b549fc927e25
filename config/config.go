package config

import (
	"log/slog"

	"github.com/cockroachdb/errors"
)

// Parser defines an interface for decoding raw data into a target.
//
// The path parameter is a root path expression (see package rootpath) that
// selects the part of the document to decode. For example:
//   - "." or "" decodes the whole document
//   - ".providers.library" navigates two levels deep
//   - ".hits.hits[]._source" collects one field of every element (JSON only)
//
// Parser implementations are responsible for path navigation internally.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading raw data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating decoded structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in decoded structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, errors.Wrap(err, "reading data error")
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, errors.Wrap(err, "parsing error")
		}

		if defaulter, ok := any(target).(Defaulter); ok {
			if defaulter.SetDefaults() {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		if validatable, ok := any(target).(Validator); ok {
			err := validatable.Validate()
			if err != nil {
				return nil, errors.Wrap(err, "validating error")
			}
		}

		return target, nil
	}
}

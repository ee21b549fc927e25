package fault

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrConfiguration classifies errors detected while declaring a provider type.
	ErrConfiguration = errors.New("configuration error")
	// ErrWiring classifies errors detected while resolving dataset bindings.
	ErrWiring = errors.New("wiring error")
)

// Configuration marks err as a configuration error. A nil err stays nil.
func Configuration(err error) error {
	if err == nil {
		return nil
	}

	return errors.Mark(err, ErrConfiguration)
}

// Wiring marks err as a wiring error. A nil err stays nil.
func Wiring(err error) error {
	if err == nil {
		return nil
	}

	return errors.Mark(err, ErrWiring)
}

// IsConfiguration reports whether err is classified as a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsWiring reports whether err is classified as a wiring error.
func IsWiring(err error) bool {
	return errors.Is(err, ErrWiring)
}

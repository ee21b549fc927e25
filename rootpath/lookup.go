package rootpath

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	// ErrKeyNotFound is returned when a mapping has no entry for a segment.
	ErrKeyNotFound = errors.New("key not found")
	// ErrIndexOutOfRange is returned when a sequence index is outside the sequence.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotTraversable is returned when a segment is applied to a scalar, or to a
	// sequence with a segment that is not a decimal index.
	ErrNotTraversable = errors.New("not traversable")
)

// Lookup resolves one segment against node. Mappings are indexed by key and
// sequences by non-negative decimal index.
func Lookup(node any, segment string) (any, error) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, segment)
		}

		return value, nil
	case []any:
		index, err := strconv.Atoi(segment)
		if err != nil || index < 0 {
			return nil, fmt.Errorf("%w: segment %q is not a sequence index", ErrNotTraversable, segment)
		}

		if index >= len(typed) {
			return nil, fmt.Errorf("%w: %d not in [0:%d]", ErrIndexOutOfRange, index, len(typed))
		}

		return typed[index], nil
	default:
		return nil, fmt.Errorf("%w: segment %q applied to %T", ErrNotTraversable, segment, node)
	}
}

package rootpath

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-fakedata/fault"

	"github.com/cockroachdb/errors"
)

const (
	// Identity is the root path selecting the whole document.
	Identity = "."

	flattenMarker = "[]"
	separator     = "."
)

// ErrMalformedRoot is returned when a root path expression violates the grammar.
var ErrMalformedRoot = errors.New("malformed root")

// ErrNotSequence is returned when the left side of a flatten marker does not resolve to a sequence.
var ErrNotSequence = errors.New("not a sequence")

// Path is a validated root path expression.
// The zero value is not valid; use Parse or MustParse.
type Path struct {
	expr    string
	common  []string
	item    []string
	flatten bool
}

// Parse validates expr and returns the corresponding Path.
// An empty expression is treated as Identity.
func Parse(expr string) (Path, error) {
	if expr == "" {
		expr = Identity
	}

	parts := strings.Split(expr, flattenMarker)

	for _, part := range parts {
		if part != "" && !strings.HasPrefix(part, separator) {
			return Path{}, malformed(expr)
		}
	}

	if expr != Identity && strings.HasSuffix(expr, separator) {
		return Path{}, malformed(expr)
	}

	if strings.Contains(expr, separator+separator) || len(parts) > 2 {
		return Path{}, malformed(expr)
	}

	path := Path{
		expr:   expr,
		common: segments(parts[0]),
	}

	if len(parts) == 2 {
		path.flatten = true
		path.item = segments(parts[1])
	}

	return path, nil
}

// MustParse is like Parse but panics if expr is malformed.
func MustParse(expr string) Path {
	path, err := Parse(expr)
	if err != nil {
		panic(err)
	}

	return path
}

// Resolve parses expr and resolves it against tree.
func Resolve(tree any, expr string) (any, error) {
	path, err := Parse(expr)
	if err != nil {
		return nil, err
	}

	return path.Resolve(tree)
}

// String returns the original expression.
func (p Path) String() string {
	return p.expr
}

// IsIdentity reports whether the path selects the whole document unchanged.
func (p Path) IsIdentity() bool {
	return !p.flatten && len(p.common) == 0
}

// Flattens reports whether the path contains the flatten marker.
func (p Path) Flattens() bool {
	return p.flatten
}

// Segments returns a copy of the segments walked before the flatten marker.
func (p Path) Segments() []string {
	return append([]string(nil), p.common...)
}

// Resolve navigates tree along the path. Lookup errors are returned unchanged.
func (p Path) Resolve(tree any) (any, error) {
	node, err := walk(tree, p.common)
	if err != nil {
		return nil, err
	}

	if !p.flatten {
		return node, nil
	}

	seq, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: flatten %q found %T", ErrNotSequence, p.expr, node)
	}

	out := make([]any, 0, len(seq))

	for _, elem := range seq {
		value, err := walk(elem, p.item)
		if err != nil {
			return nil, err
		}

		out = append(out, value)
	}

	return out, nil
}

func walk(node any, segs []string) (any, error) {
	for _, seg := range segs {
		next, err := Lookup(node, seg)
		if err != nil {
			return nil, err
		}

		node = next
	}

	return node, nil
}

// segments splits one side of the expression. The leading separator is dropped;
// a side equal to "." or "" has no segments.
func segments(side string) []string {
	if side == "" || side == Identity {
		return nil
	}

	return strings.Split(side[1:], separator)
}

func malformed(expr string) error {
	return fault.Configuration(fmt.Errorf("%w: %s", ErrMalformedRoot, expr))
}

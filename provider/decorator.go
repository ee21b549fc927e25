package provider

import (
	"github.com/0xalexb/hjarta-fakedata/picker"

	"github.com/cockroachdb/errors"
)

// Variant tells how a method receives datasets.
type Variant int

const (
	// Unbound methods receive only the caller's arguments.
	Unbound Variant = iota
	// Bound methods receive their dataset tuple before the caller's arguments.
	Bound
	// BoundNarrowed methods receive a dataset tuple filtered by a match predicate.
	BoundNarrowed
	// Picker methods are generated by PickerMethod and pick from one dataset.
	Picker
)

func (v Variant) String() string {
	switch v {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case BoundNarrowed:
		return "bound+narrowed"
	case Picker:
		return "picker"
	default:
		return "unknown"
	}
}

type decoratorKind int

const (
	bindDecorator decoratorKind = iota + 1
	matchDecorator
)

// Decorator composes onto a method declaration.
type Decorator struct {
	kind  decoratorKind
	names []string
	match picker.Match
}

// Bind prepends the named datasets, in the given order, to the method arguments.
// At least one name is required.
func Bind(name string, others ...string) Decorator {
	names := make([]string, 0, 1+len(others))
	names = append(names, name)
	names = append(names, others...)

	return Decorator{kind: bindDecorator, names: names}
}

// Match narrows every dataset bound so far to the entries satisfying match.
// The datasets held by the type are not modified.
func Match(match picker.Match) Decorator {
	return Decorator{kind: matchDecorator, match: match}
}

func (d Decorator) check() error {
	switch d.kind {
	case bindDecorator:
		return nil
	case matchDecorator:
		if d.match == nil {
			return errors.New("match predicate is nil")
		}

		return nil
	default:
		return errors.New("unknown decorator")
	}
}

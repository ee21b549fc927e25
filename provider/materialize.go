package provider

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/0xalexb/hjarta-fakedata/dataset"
	"github.com/0xalexb/hjarta-fakedata/fault"
	"github.com/0xalexb/hjarta-fakedata/picker"

	"github.com/cockroachdb/errors"
)

// BoundMethods is the resolved, read-only method table of a provider type.
type BoundMethods struct {
	typeName string
	order    []string
	methods  map[string]*boundMethod
}

type boundMethod struct {
	name     string
	variant  Variant
	body     Body
	datasets []dataset.Dataset
}

// TypeName returns the name of the provider type the methods belong to.
func (b *BoundMethods) TypeName() string {
	return b.typeName
}

// Names returns the method names in declaration order.
func (b *BoundMethods) Names() []string {
	return slices.Clone(b.order)
}

// Variant returns the variant of the named method.
func (b *BoundMethods) Variant(name string) (Variant, bool) {
	m, ok := b.methods[name]
	if !ok {
		return Unbound, false
	}

	return m.variant, true
}

// Datasets returns the dataset tuple bound to the named method.
// The returned slice is a copy; the datasets themselves are shared.
func (b *BoundMethods) Datasets(name string) ([]dataset.Dataset, bool) {
	m, ok := b.methods[name]
	if !ok {
		return nil, false
	}

	return slices.Clone(m.datasets), true
}

// Materialize resolves the bindings of every declared method. It runs once:
// later calls return the same BoundMethods. On success the registration table
// is released; on failure it is kept and the wiring error is returned.
func (t *Type) Materialize() (*BoundMethods, error) {
	if t.bound != nil {
		return t.bound, nil
	}

	bound := &BoundMethods{
		typeName: t.name,
		order:    make([]string, 0, len(t.methods)),
		methods:  make(map[string]*boundMethod, len(t.methods)),
	}

	for _, decl := range t.methods {
		resolved, err := t.resolve(decl)
		if err != nil {
			return nil, errors.WithDetailf(err, "provider type %s, method %s", t.name, decl.name)
		}

		bound.order = append(bound.order, decl.name)
		bound.methods[decl.name] = resolved
	}

	released := t.Datasets()

	t.bound = bound
	t.table = nil
	t.methods = nil
	t.index = nil

	t.logger.Debug("bindings materialized",
		slog.String("type", t.name), slog.Any("methods", bound.order))
	t.logger.Debug("registration table released",
		slog.String("type", t.name), slog.Any("datasets", released))

	return bound, nil
}

func (t *Type) resolve(decl *method) (*boundMethod, error) {
	if decl.picker {
		return &boundMethod{
			name:     decl.name,
			variant:  Picker,
			datasets: []dataset.Dataset{decl.picked},
		}, nil
	}

	resolved := &boundMethod{
		name:    decl.name,
		variant: Unbound,
		body:    decl.body,
	}

	for _, decorator := range decl.decorators {
		switch decorator.kind {
		case bindDecorator:
			for _, name := range decorator.names {
				ds, ok := t.table[name]
				if !ok {
					return nil, fault.Wiring(fmt.Errorf("%w: '%s'", ErrDatasetNotFound, name))
				}

				resolved.datasets = append(resolved.datasets, ds)
			}

			if resolved.variant == Unbound {
				resolved.variant = Bound
			}
		case matchDecorator:
			if resolved.variant == Unbound {
				return nil, fault.Wiring(ErrMatchWithoutBinding)
			}

			narrowed, err := narrow(resolved.datasets, decorator.match)
			if err != nil {
				return nil, err
			}

			resolved.datasets = narrowed
			resolved.variant = BoundNarrowed
		default:
			return nil, invalid("unknown decorator on method " + decl.name)
		}
	}

	return resolved, nil
}

// narrow filters every dataset of tuple into a new sequence.
func narrow(tuple []dataset.Dataset, match picker.Match) ([]dataset.Dataset, error) {
	out := make([]dataset.Dataset, len(tuple))

	for i, ds := range tuple {
		seq, ok := dataset.AsSequence(ds)
		if !ok {
			return nil, fault.Wiring(fmt.Errorf("%w: cannot narrow %T", ErrNotSequence, ds))
		}

		out[i] = picker.Filter(seq, match)
	}

	return out, nil
}

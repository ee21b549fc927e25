package provider

import (
	"fmt"

	"github.com/0xalexb/hjarta-fakedata/dataset"
	"github.com/0xalexb/hjarta-fakedata/picker"
)

// Provider is an instance of a provider type bound to a random source.
type Provider struct {
	methods *BoundMethods
	src     picker.RandomSource
}

// New instantiates the type. The first instantiation materializes the
// bindings; later ones reuse them.
func (t *Type) New(src picker.RandomSource) (*Provider, error) {
	bound, err := t.Materialize()
	if err != nil {
		return nil, err
	}

	return &Provider{methods: bound, src: src}, nil
}

// TypeName returns the name of the provider type.
func (p *Provider) TypeName() string {
	return p.methods.typeName
}

// Methods returns the method names in declaration order.
func (p *Provider) Methods() []string {
	return p.methods.Names()
}

// Has reports whether the provider exposes the named method.
func (p *Provider) Has(name string) bool {
	_, ok := p.methods.methods[name]

	return ok
}

// Source returns the random source picks are drawn from.
func (p *Provider) Source() picker.RandomSource {
	return p.src
}

// Generate invokes the named method without arguments.
func (p *Provider) Generate(name string, opts ...picker.Option) (any, error) {
	return p.Invoke(name, nil, opts...)
}

// Invoke calls the named method. Bound datasets are prepended to args.
func (p *Provider) Invoke(name string, args []any, opts ...picker.Option) (any, error) {
	m, ok := p.methods.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, p.methods.typeName, name)
	}

	if m.variant == Picker {
		if len(args) > 0 {
			return nil, fmt.Errorf("%w: %s got %d", ErrUnexpectedArguments, name, len(args))
		}

		return p.Pick(m.datasets[0], opts...)
	}

	full := make([]any, 0, len(m.datasets)+len(args))
	full = append(full, m.datasets...)
	full = append(full, args...)

	return m.body(p, full, opts...)
}

// Pick draws one entry of collection, which must be a sequence.
func (p *Provider) Pick(collection any, opts ...picker.Option) (any, error) {
	seq, err := Sequence(collection)
	if err != nil {
		return nil, err
	}

	return picker.Pick(p.src, seq, opts...)
}

// Sequence returns v as a sequence of entries.
func Sequence(v any) ([]any, error) {
	seq, ok := dataset.AsSequence(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotSequence, v)
	}

	return seq, nil
}

// Concat joins sequences into a new one.
func Concat(collections ...any) ([]any, error) {
	var out []any

	for _, collection := range collections {
		seq, err := Sequence(collection)
		if err != nil {
			return nil, err
		}

		out = append(out, seq...)
	}

	return out, nil
}

package generator

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/0xalexb/hjarta-fakedata/picker"
	"github.com/0xalexb/hjarta-fakedata/provider"
	"github.com/0xalexb/hjarta-fakedata/random"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cockroachdb/errors"
)

var (
	// ErrNoSuchMethod is returned when no added provider exposes the requested method.
	ErrNoSuchMethod = errors.New("no such method")
	// ErrNilType is returned when AddProvider receives a nil type.
	ErrNilType = errors.New("provider type is nil")
)

// Options holds the settings collected by New.
type Options struct {
	Seed   *uint64
	Source *random.Source
	Logger *slog.Logger
	Types  []*provider.Type
}

// Option defines a function type for configuring a Generator.
type Option func(*Options)

// WithSeed seeds the generator's random source.
func WithSeed(seed uint64) Option {
	return func(opts *Options) {
		opts.Seed = &seed
	}
}

// WithSource makes the generator draw from src. WithSeed, if also given, reseeds src.
func WithSource(src *random.Source) Option {
	return func(opts *Options) {
		opts.Source = src
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithTypes registers provider types, in order, when the generator is built.
func WithTypes(types ...*provider.Type) Option {
	return func(opts *Options) {
		opts.Types = append(opts.Types, types...)
	}
}

// Generator dispatches method calls to the providers added to it.
type Generator struct {
	src       *random.Source
	logger    *slog.Logger
	providers []*provider.Provider
}

// New creates a Generator. Without a seed or source the stream is seeded from
// crypto-grade randomness; any explicit seed, zero included, is repeatable.
func New(opts ...Option) *Generator {
	options := collect(opts)

	return newGenerator(options)
}

// Build creates a Generator and adds every type given with WithTypes.
func Build(opts ...Option) (*Generator, error) {
	options := collect(opts)
	gen := newGenerator(options)

	for _, typ := range options.Types {
		err := gen.AddProvider(typ)
		if err != nil {
			return nil, err
		}
	}

	return gen, nil
}

func collect(opts []Option) Options {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return options
}

func newGenerator(options Options) *Generator {
	src := options.Source

	switch {
	case src == nil && options.Seed != nil:
		src = random.New(*options.Seed)
	case src == nil:
		src = random.NewUnseeded()
	case options.Seed != nil:
		src.Seed(*options.Seed)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{src: src, logger: logger}
}

// Seed restarts the random stream shared by all providers.
func (g *Generator) Seed(seed uint64) {
	g.src.Seed(seed)
	g.logger.Debug("generator reseeded", slog.Uint64("seed", seed))
}

// Faker returns the gofakeit Faker behind the generator's source.
func (g *Generator) Faker() *gofakeit.Faker {
	return g.src.Faker()
}

// AddProvider instantiates typ against the generator's source and registers
// the instance. Each call creates a new instance.
func (g *Generator) AddProvider(typ *provider.Type) error {
	if typ == nil {
		return ErrNilType
	}

	instance, err := typ.New(g.src)
	if err != nil {
		return errors.Wrapf(err, "adding provider %s", typ.Name())
	}

	g.providers = append(g.providers, instance)

	g.logger.Info("provider added",
		slog.String("type", instance.TypeName()),
		slog.Any("methods", instance.Methods()),
	)

	return nil
}

// Providers returns the type names of the added providers in registration order.
func (g *Generator) Providers() []string {
	names := make([]string, 0, len(g.providers))

	for _, p := range g.providers {
		names = append(names, p.TypeName())
	}

	return names
}

// Methods returns every method name the generator can dispatch, sorted.
func (g *Generator) Methods() []string {
	var names []string

	for _, p := range g.providers {
		for _, name := range p.Methods() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	slices.Sort(names)

	return names
}

// Generate calls method without arguments.
func (g *Generator) Generate(method string, opts ...picker.Option) (any, error) {
	return g.Invoke(method, nil, opts...)
}

// Invoke calls method on the most recently added provider exposing it.
func (g *Generator) Invoke(method string, args []any, opts ...picker.Option) (any, error) {
	p, ok := g.lookup(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchMethod, method)
	}

	return p.Invoke(method, args, opts...)
}

func (g *Generator) lookup(method string) (*provider.Provider, bool) {
	for i := len(g.providers) - 1; i >= 0; i-- {
		if g.providers[i].Has(method) {
			return g.providers[i], true
		}
	}

	return nil, false
}

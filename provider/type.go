package provider

import (
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"slices"

	"github.com/0xalexb/hjarta-fakedata/dataset"
	"github.com/0xalexb/hjarta-fakedata/fault"
	"github.com/0xalexb/hjarta-fakedata/picker"
	"github.com/0xalexb/hjarta-fakedata/rootpath"

	"github.com/cockroachdb/errors"
)

// Body is the code of a generator method. args holds the bound dataset tuple
// followed by the caller's arguments; opts are the caller's pick options.
type Body func(p *Provider, args []any, opts ...picker.Option) (any, error)

// Type is a provider type: a table of named datasets and a list of method
// declarations, resolved into bound methods once.
type Type struct {
	name    string
	logger  *slog.Logger
	loader  *dataset.Loader
	table   map[string]dataset.Dataset
	methods []*method
	index   map[string]*method
	bound   *BoundMethods
}

type method struct {
	name       string
	body       Body
	decorators []Decorator
	// picked is captured when the dataset is attached.
	picker bool
	picked []any
}

// Options holds the settings collected by NewType.
type Options struct {
	Logger       *slog.Logger
	Loader       *dataset.Loader
	declarations []func(*Type) error
}

// Option defines a function type for configuring a provider type.
type Option func(*Options)

// WithLogger sets the logger used by the type. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithLoader sets the dataset loader. Defaults to a loader supporting JSON.
func WithLoader(loader *dataset.Loader) Option {
	return func(opts *Options) {
		opts.Loader = loader
	}
}

// WithDataset declares a dataset attachment. See Type.Attach.
func WithDataset(name, filename string, opts ...AttachOption) Option {
	return func(o *Options) {
		o.declarations = append(o.declarations, func(t *Type) error {
			return t.Attach(name, filename, opts...)
		})
	}
}

// WithMethod declares a generator method. See Type.Method.
func WithMethod(name string, body Body, decorators ...Decorator) Option {
	return func(o *Options) {
		o.declarations = append(o.declarations, func(t *Type) error {
			return t.Method(name, body, decorators...)
		})
	}
}

// NewType declares a provider type. Declarations run in the order given;
// the first failing declaration aborts the registration.
func NewType(name string, opts ...Option) (*Type, error) {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	if name == "" {
		return nil, invalid("type name is empty")
	}

	typ := &Type{
		name:   name,
		logger: options.Logger,
		loader: options.Loader,
		table:  make(map[string]dataset.Dataset),
		index:  make(map[string]*method),
	}

	if typ.logger == nil {
		typ.logger = slog.Default()
	}

	if typ.loader == nil {
		typ.loader = dataset.NewLoader()
	}

	for _, declare := range options.declarations {
		err := declare(typ)
		if err != nil {
			return nil, errors.WithDetailf(err, "provider type %s", name)
		}
	}

	return typ, nil
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// AttachOptions holds the settings of a single dataset attachment.
type AttachOptions struct {
	Root   string
	Picker string
	FS     fs.FS
}

// AttachOption defines a function type for configuring a dataset attachment.
type AttachOption func(*AttachOptions)

// Root sets the root path selecting the dataset inside the document. Defaults to ".".
func Root(expr string) AttachOption {
	return func(opts *AttachOptions) {
		opts.Root = expr
	}
}

// PickerMethod generates a method called name that picks one entry of the dataset.
func PickerMethod(name string) AttachOption {
	return func(opts *AttachOptions) {
		opts.Picker = name
	}
}

// FromFS reads the dataset file from fsys instead of the operating system filesystem.
func FromFS(fsys fs.FS) AttachOption {
	return func(opts *AttachOptions) {
		opts.FS = fsys
	}
}

// Attach loads filename, selects the part addressed by the root path and
// registers it under name. A later attachment with the same name replaces the
// earlier one. Loading happens immediately.
func (t *Type) Attach(name, filename string, opts ...AttachOption) error {
	options := AttachOptions{Root: rootpath.Identity}

	for _, apply := range opts {
		apply(&options)
	}

	if t.bound != nil {
		return fault.Configuration(fmt.Errorf("%w: attach %q", ErrAlreadyMaterialized, name))
	}

	if name == "" {
		return invalid("dataset name is empty")
	}

	if options.Picker != "" {
		if _, taken := t.index[options.Picker]; taken {
			return fault.Configuration(fmt.Errorf("%w: %s", ErrDuplicateMethod, options.Picker))
		}
	}

	ds, err := t.load(filename, options)
	if err != nil {
		return err
	}

	if options.Picker != "" {
		seq, ok := dataset.AsSequence(ds)
		if !ok {
			return fault.Configuration(
				fmt.Errorf("%w: picker %q on dataset %q (%T)", ErrNotSequence, options.Picker, name, ds))
		}

		t.declare(&method{name: options.Picker, picker: true, picked: seq})
	}

	if _, exists := t.table[name]; exists {
		t.logger.Warn("dataset replaced",
			slog.String("type", t.name), slog.String("dataset", name), slog.String("file", filename))
	}

	t.table[name] = ds

	t.logger.Debug("dataset attached",
		slog.String("type", t.name),
		slog.String("dataset", name),
		slog.String("file", filename),
		slog.String("root", options.Root),
		slog.Int("entries", entries(ds)),
	)

	return nil
}

// Method declares a generator method. Decorators are applied in order, innermost first.
func (t *Type) Method(name string, body Body, decorators ...Decorator) error {
	if t.bound != nil {
		return fault.Configuration(fmt.Errorf("%w: method %q", ErrAlreadyMaterialized, name))
	}

	if name == "" {
		return invalid("method name is empty")
	}

	if body == nil {
		return invalid("method " + name + " has no body")
	}

	if _, taken := t.index[name]; taken {
		return fault.Configuration(fmt.Errorf("%w: %s", ErrDuplicateMethod, name))
	}

	for i, decorator := range decorators {
		err := decorator.check()
		if err != nil {
			return invalid(fmt.Sprintf("method %s, decorator %d: %v", name, i, err))
		}
	}

	t.declare(&method{
		name:       name,
		body:       body,
		decorators: append([]Decorator(nil), decorators...),
	})

	return nil
}

// Datasets returns the names held by the registration table. The table is
// released once bindings are materialized, after which the result is empty.
func (t *Type) Datasets() []string {
	return slices.Sorted(maps.Keys(t.table))
}

// Materialized reports whether bindings have been resolved.
func (t *Type) Materialized() bool {
	return t.bound != nil
}

func (t *Type) declare(m *method) {
	t.methods = append(t.methods, m)
	t.index[m.name] = m
}

func (t *Type) load(filename string, options AttachOptions) (dataset.Dataset, error) {
	if options.FS != nil {
		return t.loader.LoadFS(options.FS, filename, options.Root)
	}

	return t.loader.Load(filename, options.Root)
}

func entries(ds dataset.Dataset) int {
	if seq, ok := dataset.AsSequence(ds); ok {
		return len(seq)
	}

	return 1
}

func invalid(reason string) error {
	return fault.Configuration(fmt.Errorf("%w: %s", ErrInvalidDeclaration, reason))
}

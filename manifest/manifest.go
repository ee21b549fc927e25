package manifest

import (
	"fmt"
	"maps"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/0xalexb/hjarta-fakedata/config"
	filefetcher "github.com/0xalexb/hjarta-fakedata/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-fakedata/config/parser/yaml"
	"github.com/0xalexb/hjarta-fakedata/fault"
	"github.com/0xalexb/hjarta-fakedata/provider"
	"github.com/0xalexb/hjarta-fakedata/rootpath"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrUnknownType is returned when asking for a type the manifest does not declare.
	ErrUnknownType = errors.New("unknown provider type")
)

//nolint:gochecknoglobals // validator caches struct metadata; built once.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Providers map[string]TypeSpec `validate:"required,min=1,dive,keys,required,endkeys" yaml:"providers"`

	dir string
}

// TypeSpec lists the datasets of one provider type.
type TypeSpec struct {
	Datasets []DatasetSpec `validate:"required,min=1,dive" yaml:"datasets"`
}

// DatasetSpec describes one dataset attachment.
type DatasetSpec struct {
	Name   string `validate:"required" yaml:"name"`
	File   string `validate:"required" yaml:"file"`
	Root   string `yaml:"root"`
	Picker string `yaml:"picker"`
}

// Load reads and validates the manifest at fpath.
func Load(fpath string) (*Manifest, error) {
	fetcher, err := filefetcher.NewFetcher(fpath)()
	if err != nil {
		return nil, errors.Wrapf(err, "loading manifest %s", fpath)
	}

	m, err := config.Provider(&Manifest{}, rootpath.Identity)(yamlparser.NewParser(), fetcher)
	if err != nil {
		return nil, errors.Wrapf(err, "loading manifest %s", fpath)
	}

	m.dir = filepath.Dir(fpath)

	return m, nil
}

// SetDefaults fills in missing roots.
func (m *Manifest) SetDefaults() bool {
	changed := false

	for _, spec := range m.Providers {
		for i := range spec.Datasets {
			if spec.Datasets[i].Root == "" {
				spec.Datasets[i].Root = rootpath.Identity
				changed = true
			}
		}
	}

	return changed
}

// Validate checks required fields and root expressions.
func (m *Manifest) Validate() error {
	err := getValidator().Struct(m)
	if err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return errors.Wrap(err, "validating manifest")
		}

		messages := make([]string, 0, len(fieldErrors))

		for _, fieldErr := range fieldErrors {
			messages = append(messages, fieldPath(fieldErr)+": "+describe(fieldErr))
		}

		return fault.Configuration(fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(messages, "; ")))
	}

	for _, typeName := range m.Names() {
		for _, spec := range m.Providers[typeName].Datasets {
			_, err := rootpath.Parse(spec.Root)
			if err != nil {
				return errors.WithDetailf(err, "provider %s, dataset %s", typeName, spec.Name)
			}
		}
	}

	return nil
}

// Names returns the declared type names, sorted.
func (m *Manifest) Names() []string {
	return slices.Sorted(maps.Keys(m.Providers))
}

// Dir returns the directory relative file names are resolved against.
func (m *Manifest) Dir() string {
	return m.dir
}

// TypeOptions converts the datasets of typeName into provider options.
func (m *Manifest) TypeOptions(typeName string) ([]provider.Option, error) {
	spec, ok := m.Providers[typeName]
	if !ok {
		return nil, fault.Configuration(fmt.Errorf("%w: %s", ErrUnknownType, typeName))
	}

	opts := make([]provider.Option, 0, len(spec.Datasets))

	for _, ds := range spec.Datasets {
		attach := []provider.AttachOption{provider.Root(ds.Root)}
		if ds.Picker != "" {
			attach = append(attach, provider.PickerMethod(ds.Picker))
		}

		opts = append(opts, provider.WithDataset(ds.Name, m.resolve(ds.File), attach...))
	}

	return opts, nil
}

// Types declares every provider type of the manifest. extra holds additional
// options, such as methods or a logger, appended to the type of the same name.
func (m *Manifest) Types(extra map[string][]provider.Option) (map[string]*provider.Type, error) {
	for typeName := range extra {
		if _, ok := m.Providers[typeName]; !ok {
			return nil, fault.Configuration(fmt.Errorf("%w: %s", ErrUnknownType, typeName))
		}
	}

	types := make(map[string]*provider.Type, len(m.Providers))

	for _, typeName := range m.Names() {
		opts, err := m.TypeOptions(typeName)
		if err != nil {
			return nil, err
		}

		typ, err := provider.NewType(typeName, append(opts, extra[typeName]...)...)
		if err != nil {
			return nil, err
		}

		types[typeName] = typ
	}

	return types, nil
}

func (m *Manifest) resolve(file string) string {
	if filepath.IsAbs(file) || m.dir == "" {
		return file
	}

	return filepath.Join(m.dir, file)
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(fld.Name)
			}

			return name
		})
	})

	return validate
}

// fieldPath drops the struct name from the namespace: Manifest.providers[x] -> providers[x].
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()

	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}

	return namespace
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fieldErr.Param() + " entries"
	default:
		return "is invalid"
	}
}

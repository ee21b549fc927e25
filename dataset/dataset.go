package dataset

import (
	"fmt"
	"io/fs"

	"github.com/0xalexb/hjarta-fakedata/config"
	filefetcher "github.com/0xalexb/hjarta-fakedata/config/fetcher/file"
	jsonparser "github.com/0xalexb/hjarta-fakedata/config/parser/json"
	"github.com/0xalexb/hjarta-fakedata/fault"
	"github.com/0xalexb/hjarta-fakedata/rootpath"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedFormat is returned for file extensions without a registered parser.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Dataset is a decoded value selected by a root path, usually a sequence of records.
type Dataset = any

// Loader reads dataset files and resolves their root path.
type Loader struct {
	parsers map[string]config.Parser
}

// Option defines a function type for configuring a Loader.
type Option func(*Loader)

// WithParser registers parser for files with extension ext (without the leading dot).
func WithParser(ext string, parser config.Parser) Option {
	return func(l *Loader) {
		l.parsers[filefetcher.Ext("x."+ext)] = parser
	}
}

// NewLoader creates a Loader with the JSON parser registered.
func NewLoader(opts ...Option) *Loader {
	loader := &Loader{
		parsers: map[string]config.Parser{
			"json": jsonparser.NewParser(),
		},
	}

	for _, apply := range opts {
		apply(loader)
	}

	return loader
}

//nolint:gochecknoglobals // shared loader with the default parsers.
var defaultLoader = NewLoader()

// Load reads filename with the default loader and returns the part selected by root.
func Load(filename, root string) (Dataset, error) {
	return defaultLoader.Load(filename, root)
}

// Load reads filename from the operating system filesystem and returns the part selected by root.
func (l *Loader) Load(filename, root string) (Dataset, error) {
	return l.load(filename, root, filefetcher.NewFetcher(filename))
}

// LoadFS reads name from fsys and returns the part selected by root.
func (l *Loader) LoadFS(fsys fs.FS, name, root string) (Dataset, error) {
	return l.load(name, root, filefetcher.NewFSFetcher(fsys, name))
}

// Supports reports whether filename has a registered format.
func (l *Loader) Supports(filename string) bool {
	_, ok := l.parsers[filefetcher.Ext(filename)]

	return ok
}

func (l *Loader) load(filename, root string, newFetcher func() (*filefetcher.Fetcher, error)) (Dataset, error) {
	path, err := rootpath.Parse(root)
	if err != nil {
		return nil, err
	}

	ext := filefetcher.Ext(filename)

	parser, ok := l.parsers[ext]
	if !ok {
		return nil, fault.Configuration(fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext))
	}

	fetcher, err := newFetcher()
	if err != nil {
		return nil, err
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, err
	}

	var tree Dataset

	err = parser.Parse(data, &tree, path.String())
	if err != nil {
		return nil, err
	}

	return tree, nil
}

// AsSequence returns ds as a sequence of entries.
func AsSequence(ds Dataset) ([]any, bool) {
	seq, ok := ds.([]any)

	return seq, ok
}

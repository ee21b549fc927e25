package file

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for a single file.
// It reads the file at construction time and caches the contents.
type Fetcher struct {
	name string
	data []byte
}

// NewFetcher returns a constructor function that creates a Fetcher for a file
// on the operating system filesystem. The file is read when the constructor runs.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, errors.Wrapf(err, "stat file %q", cleanPath)
		}

		if stat.IsDir() {
			return nil, errors.Wrapf(ErrPathIsDirectory, "path %q", cleanPath)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, errors.Wrapf(err, "reading file %q", cleanPath)
		}

		return &Fetcher{name: cleanPath, data: data}, nil
	}
}

// NewFSFetcher returns a constructor function that creates a Fetcher for the
// file called name inside fsys.
func NewFSFetcher(fsys fs.FS, name string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanName := path.Clean(name)

		stat, err := fs.Stat(fsys, cleanName)
		if err != nil {
			return nil, errors.Wrapf(err, "stat file %q", cleanName)
		}

		if stat.IsDir() {
			return nil, errors.Wrapf(ErrPathIsDirectory, "path %q", cleanName)
		}

		data, err := fs.ReadFile(fsys, cleanName)
		if err != nil {
			return nil, errors.Wrapf(err, "reading file %q", cleanName)
		}

		return &Fetcher{name: cleanName, data: data}, nil
	}
}

// Name returns the cleaned path the data was read from.
func (f *Fetcher) Name() string {
	return f.name
}

// Ext returns the lower-cased file extension without the leading dot.
func (f *Fetcher) Ext() string {
	return Ext(f.name)
}

// Fetch returns a copy of the cached data that was read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Ext returns the lower-cased extension of name without the leading dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

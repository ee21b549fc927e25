package fakedata

import (
	"github.com/0xalexb/hjarta-fakedata/generator"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	Manifests []ManifestGenerator
	LogLevel  string
	LogFormat string
}

// ManifestGenerator names a generator whose provider types come from a manifest file.
type ManifestGenerator struct {
	Name    string
	Path    string
	Options []generator.Option
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithGenerator adds a named generator module to the application.
// The name is used as both the Fx module name and the DI named tag for *generator.Generator.
// Call multiple times with different names to create multiple generators.
func WithGenerator(name string, opts ...generator.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, generator.NewModule(name, opts...))
	}
}

// WithManifest adds a named generator holding every provider type declared in
// the manifest at path. Types log through the application logger.
func WithManifest(name, path string, opts ...generator.Option) Option {
	return func(o *Options) {
		o.Manifests = append(o.Manifests, ManifestGenerator{Name: name, Path: path, Options: opts})
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log record format, "json" (default) or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

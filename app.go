package fakedata

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-fakedata/generator"
	"github.com/0xalexb/hjarta-fakedata/logging"
	"github.com/0xalexb/hjarta-fakedata/manifest"
	"github.com/0xalexb/hjarta-fakedata/provider"

	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for a fake-data application using Fx.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options, os.Stderr),
	}
}

func configure(options *Options, w io.Writer) *fx.App {
	config := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := logging.NewLogger(config, w)
	slog.SetDefault(logger)

	modules := make([]fx.Option, 0, len(options.Modules)+len(options.Manifests))
	modules = append(modules, options.Modules...)

	for _, spec := range options.Manifests {
		modules = append(modules, manifestModule(spec, logger))
	}

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(config),
		fx.Supply(logger),
		fx.Options(modules...),
	)
}

// manifestModule declares the manifest's provider types and exposes them
// through a named generator.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func manifestModule(spec ManifestGenerator, logger *slog.Logger) fx.Option {
	m, err := manifest.Load(spec.Path)
	if err != nil {
		return fx.Error(err)
	}

	extra := make(map[string][]provider.Option, len(m.Providers))

	for _, typeName := range m.Names() {
		extra[typeName] = []provider.Option{provider.WithLogger(logger)}
	}

	types, err := m.Types(extra)
	if err != nil {
		return fx.Error(errors.Wrapf(err, "manifest %s", spec.Path))
	}

	ordered := make([]*provider.Type, 0, len(types))

	for _, typeName := range m.Names() {
		ordered = append(ordered, types[typeName])
	}

	opts := append([]generator.Option{generator.WithTypes(ordered...)}, spec.Options...)

	return generator.NewModule(spec.Name, opts...)
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return errors.Wrap(err, "failed to start app")
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return errors.Wrap(err, "failed to stop app")
		}

		return nil
	}

	return errAppNotInitialized
}

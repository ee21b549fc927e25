package generator

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
)

// ErrEmptyName is returned when a module is created without a name.
var ErrEmptyName = errors.New("generator name is empty")

// NewModule creates an Fx module supplying a *Generator tagged with name.
// The generator logs through the *slog.Logger found in the container unless
// WithLogger is passed. Types given with WithTypes are added in order when
// the generator is first requested.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Module(name,
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) (*Generator, error) {
					moduleOpts := append([]Option{WithLogger(logger)}, opts...)

					gen, err := Build(moduleOpts...)
					if err != nil {
						return nil, errors.Wrapf(err, "building generator %s", name)
					}

					return gen, nil
				},
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
			),
		),
	)
}

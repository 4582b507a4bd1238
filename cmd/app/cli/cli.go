package cli

import (
	"context"

	"go.uber.org/fx"

	"mergington.dev/activities/internal/app"
	"mergington.dev/activities/internal/app/appcontext"
)

// Run boots the application graph in CLI mode with module added, calls fn once every OnStart
// hook has run and stops the graph afterwards.
func Run(ctx context.Context, module fx.Option, fn func(ctx context.Context) error) (err error) {
	a := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := a.Stop(ctx); err == nil {
			err = stopErr
		}
	}()

	return fn(ctx)
}

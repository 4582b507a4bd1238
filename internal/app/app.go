package app

import (
	"time"

	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/app/appcontext"
	"mergington.dev/activities/internal/controller"
	"mergington.dev/activities/internal/infra"
	"mergington.dev/activities/internal/pkg/logger"
	"mergington.dev/activities/internal/repo"
	"mergington.dev/activities/internal/server"
	"mergington.dev/activities/internal/service"
)

// Options assembles the application graph around an already parsed configuration.
func Options(conf *appconfig.Config, additionalOpts ...fx.Option) []fx.Option {
	baseOpts := []fx.Option{
		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: keep those before controllers, as controllers are also fx#Invoke
		// functions which are called in the order of their registration. The catalog OnStart hook
		// is appended before the listener's, so the store is ready before the first request.
		fx.Invoke(infra.SentryInit),
		fx.Invoke(service.InitializeCatalog),

		// Controllers
		controller.Module(),

		// fx Extra Options
		fx.StartTimeout(15 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	opts := append([]fx.Option{fx.WithLogger(logger.Fx)}, Options(conf, additionalOpts...)...)
	return fx.New(opts...)
}

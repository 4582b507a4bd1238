package server

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app"
	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/app/appcontext"
)

func Run() {
	app.New(appcontext.Declare(appcontext.EnvServer), fx.Invoke(run)).Run()
}

func run(serviceApp *fiber.App, conf *appconfig.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", conf.ServiceAddress)
			if err != nil {
				return err
			}
			log.Info().
				Str("evt.name", "http.listen").
				Str("address", ln.Addr().String()).
				Msg("server is listening")

			go func() {
				if err := serviceApp.Listener(ln); err != nil {
					log.Error().Err(err).Msg("server terminated unexpectedly")
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return serviceApp.Shutdown()
		},
	})
}

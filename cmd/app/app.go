package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"mergington.dev/activities/cmd/app/cli/db"
	"mergington.dev/activities/cmd/app/server"
	"mergington.dev/activities/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "activities",
		Description: "Mergington High School extracurricular activities backend. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			db.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}

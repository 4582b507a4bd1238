package db

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "mergington.dev/activities/cmd/app/cli"
	"mergington.dev/activities/internal/service"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "manage the roster store",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the schema and seed the catalog when the store is empty, then exit",
				Action: func(c *cli.Context) error {
					var catalog *service.Catalog
					return cliapp.Run(c.Context, fx.Populate(&catalog), func(ctx context.Context) error {
						return initialize(ctx, catalog)
					})
				},
			},
		},
	}
}

func initialize(ctx context.Context, catalog *service.Catalog) error {
	// the store has been migrated by the OnStart hook; seed even when SeedOnStart is off
	if err := catalog.Seed(ctx); err != nil {
		return err
	}

	activities, err := catalog.ListActivities(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		log.Info().
			Str("evt.name", "db.init.activity").
			Str("activity", name).
			Int("participants", len(activities[name].Participants)).
			Msg("activity ready")
	}
	return nil
}

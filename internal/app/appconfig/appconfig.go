package appconfig

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/app/appcontext"
)

const envPrefix = "mergington"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var config ConfigSpec
	err = envconfig.Process(envPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(envPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure this backend is located at https://pkg.go.dev/mergington.dev/activities/internal/app/appconfig#ConfigSpec", err)
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}

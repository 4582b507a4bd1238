package testentry

import (
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"mergington.dev/activities/internal/app"
	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/app/appcontext"
)

// Config returns a configuration backed by a private in-memory SQLite database, with
// Redis, tracing, Sentry and file logging disabled.
func Config() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			ServiceAddress:            "127.0.0.1:0",
			TrustedProxies:            []string{"127.0.0.1"},
			DatabaseDSN:               "file:" + xid.New().String() + "?mode=memory&cache=shared",
			SeedOnStart:               true,
			RosterLockExpiry:          10 * time.Second,
			IdempotencyLifetime:       time.Hour,
			HTTPServerShutdownTimeout: time.Second,
		},
		AppContext: appcontext.Declare(appcontext.EnvServer),
	}
}

// Populate starts the whole application graph against Config() and fills targets.
// The graph is stopped when the test ends.
func Populate(t testing.TB, targets ...any) {
	PopulateWith(t, Config(), targets...)
}

func PopulateWith(t testing.TB, conf *appconfig.Config, targets ...any) {
	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.InfoLevel)

	// for testing, fx lifecycle logs are too annoying. therefore, we use a NopLogger here
	opts := []fx.Option{fx.NopLogger}
	opts = append(opts, app.Options(conf)...)
	opts = append(opts, fx.Populate(targets...))

	a := fxtest.New(t, opts...)
	a.RequireStart()
	t.Cleanup(a.RequireStop)
}

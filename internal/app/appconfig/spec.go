package appconfig

import (
	"time"

	"mergington.dev/activities/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:8000"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"otlp"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// infrastructure components connection instructions

	// DatabaseDSN is the data source name of the roster store. A postgres:// or postgresql:// DSN selects
	// PostgreSQL (see https://bun.uptrace.dev/postgres/#pgdriver), anything else is treated as a SQLite DSN.
	DatabaseDSN string `required:"true" split_words:"true" default:"file:data/app.db?cache=shared"`

	DatabaseMaxOpenConns    int           `split_words:"true" default:"10"`
	DatabaseMaxIdleConns    int           `split_words:"true" default:"2"`
	DatabaseConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	DatabaseConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// SeedOnStart creates the schema and seeds the activity catalog when the store is empty.
	SeedOnStart bool `split_words:"true" default:"true"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL. Leaving this empty disables the roster lock
	// and the idempotency store.
	RedisURL string `split_words:"true"`

	// RosterLockExpiry is the expiry of the distributed lock held while a roster is being changed.
	RosterLockExpiry time.Duration `split_words:"true" default:"10s"`

	// IdempotencyLifetime is how long a saved response is replayed for a repeated Idempotency-Key.
	IdempotencyLifetime time.Duration `split_words:"true" default:"24h"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	// ConfigSpec is the environment-backed part of the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}

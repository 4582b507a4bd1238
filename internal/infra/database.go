package infra

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/extra/bunotel"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
)

// ErrStorageUnavailable is returned when the roster store cannot be opened.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Database opens the roster store selected by conf.DatabaseDSN. The Telemetry dependency only
// orders construction so the query hook picks up the configured tracer provider.
func Database(conf *appconfig.Config, lc fx.Lifecycle, tel *Telemetry) (*bun.DB, error) {
	var (
		db  *bun.DB
		err error
	)
	if IsPostgresDSN(conf.DatabaseDSN) {
		db = openPostgres(conf)
	} else {
		db, err = openSQLite(conf.DatabaseDSN)
		if err != nil {
			log.Error().Err(err).Msg("infra: database: failed to open sqlite database")
			return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
		}
	}

	if conf.DevMode || conf.BunDebugVerbose {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(conf.BunDebugVerbose)))
	}
	if tel.Enabled() {
		db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName("mergington")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("infra: database: failed to ping database")
		_ = db.Close()
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}

	if db.Dialect().Name() == dialect.SQLite {
		var enabled int
		if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil || enabled != 1 {
			log.Error().Err(err).Msg("infra: database: sqlite foreign keys are not enforced")
			_ = db.Close()
			if err == nil {
				err = errors.New("foreign_keys pragma is off")
			}
			return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}

func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func openPostgres(conf *appconfig.Config) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(conf.DatabaseDSN)))
	pgdb.SetMaxOpenConns(conf.DatabaseMaxOpenConns)
	pgdb.SetMaxIdleConns(conf.DatabaseMaxIdleConns)
	pgdb.SetConnMaxLifetime(conf.DatabaseConnMaxLifeTime)
	pgdb.SetConnMaxIdleTime(conf.DatabaseConnMaxIdleTime)

	return bun.NewDB(pgdb, pgdialect.New())
}

func openSQLite(dsn string) (*bun.DB, error) {
	if path := sqliteFilePath(dsn); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, withForeignKeys(dsn))
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer. One long-lived connection keeps in-memory databases alive
	// and serializes transactions in the pool instead of failing with SQLITE_BUSY.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// sqliteFilePath returns the on-disk path of a SQLite DSN, or "" for in-memory databases.
func sqliteFilePath(dsn string) string {
	path, rawQuery, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" {
		return ""
	}
	if q, err := url.ParseQuery(rawQuery); err == nil && q.Get("mode") == "memory" {
		return ""
	}
	return path
}

// withForeignKeys turns on foreign key enforcement for every connection the pool opens. The
// parameter spelling differs between the pure Go driver and the cgo one, so both are set.
func withForeignKeys(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_foreign_keys=1"
}

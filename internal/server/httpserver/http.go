package httpserver

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/infra"
	"mergington.dev/activities/internal/pkg/bininfo"
	"mergington.dev/activities/internal/pkg/middlewares"
	"mergington.dev/activities/internal/pkg/observability"
)

var (
	promOnce  sync.Once
	fiberprom *fiberprometheus.FiberPrometheus
)

func Create(conf *appconfig.Config, tel *infra.Telemetry) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      constant.ServiceName,
		ServerHeader: fmt.Sprintf("Mergington/%s", bininfo.Version),
		ReadTimeout:  time.Second * 20,
		WriteTimeout: time.Second * 20,
		// allow possibility for graceful shutdown, otherwise app#Shutdown() will block forever
		IdleTimeout:             conf.HTTPServerShutdownTimeout,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          conf.TrustedProxies,
		// activity names contain spaces: "/activities/Chess%20Club/signup"
		UnescapePath: true,
		ErrorHandler: ErrorHandler,
		Immutable:    true,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	app.Use(favicon.New())
	app.Use(fibersentry.New(fibersentry.Config{
		Repanic: true,
		Timeout: time.Second * 5,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET, POST, DELETE, OPTIONS",
		AllowHeaders:  "Content-Type, Idempotency-Key, sentry-trace",
		ExposeHeaders: "Content-Type, " + constant.RequestIDHeader + ", " + constant.IdempotencyHeader,
	}))
	middlewares.Logger(app)
	// the logger middleware injects the request id into the user context;
	// RequestID repopulates it into ctx.Locals for the other middlewares
	app.Use(middlewares.RequestID())
	app.Use(middlewares.EnrichSentry())

	app.Use(helmet.New(helmet.Config{
		HSTSMaxAge:       31356000,
		ReferrerPolicy:   "strict-origin-when-cross-origin",
		PermissionPolicy: "interest-cohort=()",
	}))
	app.Use(middlewares.InjectI18n())
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			log.Error().Msgf("panic: %v\n%s\n", e, buf)
		},
	}))

	// collectors live in the default registry and can only be registered once per process
	promOnce.Do(func() {
		fiberprom = fiberprometheus.New(observability.ServiceName)
	})
	fiberprom.RegisterAt(app, "/metrics")
	app.Use(fiberprom.Middleware)

	if tel.Enabled() {
		app.Use(otelfiber.Middleware())
	}

	if conf.DevMode {
		log.Info().Msg("Running in DEV mode")
		app.Use(pprof.New())
	}

	return app
}

package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/pkg/bininfo"
	"mergington.dev/activities/internal/pkg/flog"
	"mergington.dev/activities/internal/server/svr"
	"mergington.dev/activities/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	meta.Get("/health", cache.New(cache.Config{
		// probes hit this often; one ping round per second is enough
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

// Health reports each backing store. Any unreachable store turns the response into a 503.
func (c *Meta) Health(ctx *fiber.Ctx) error {
	report, err := c.HealthService.Check(ctx.UserContext())
	if err != nil {
		flog.WarnFrom(ctx).
			Err(err).
			Str("evt.name", "health.check.failed").
			Msg("backing store is unhealthy")
	}

	status, code := "ok", fiber.StatusOK
	if !report.Healthy() {
		status, code = "unavailable", fiber.StatusServiceUnavailable
	}

	return ctx.Status(code).JSON(fiber.Map{
		"status":   status,
		"database": report.Database,
		"redis":    report.Redis,
	})
}

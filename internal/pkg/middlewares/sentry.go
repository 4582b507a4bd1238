package middlewares

import (
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/constant"
)

func EnrichSentry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hub := fibersentry.GetHubFromContext(c); hub != nil {
			if id, ok := c.Locals(constant.ContextKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
			hub.Scope().SetTag("route", c.Route().Path)
		}

		return c.Next()
	}
}

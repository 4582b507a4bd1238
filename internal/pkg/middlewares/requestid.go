package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/flog"
)

// RequestID copies the request id the logger middleware generated into ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}

package middlewares

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/flog"
)

func Logger(app *fiber.App) {
	Chained(
		app,
		flog.NewHandlerMiddleware(log.With().Logger()),
		flog.RequestIDHandler("request_id", constant.RequestIDHeader),
		flog.RemoteAddrHandler("ip"),
		flog.MethodHandler("method"),
		flog.URLHandler("url"),
		flog.UserAgentHandler("user_agent"),
		requestLogger(),
	)
}

func requestLogger() fiber.Handler {
	return flog.AccessHandler(func(ctx *fiber.Ctx, duration time.Duration, err error) {
		evt := flog.InfoFrom(ctx).
			Str("evt.name", "http.request").
			Int("status", responseStatus(ctx, err)).
			Dur("duration", duration)
		if err == nil {
			evt = evt.Int("size", len(ctx.Response().Body()))
		}
		evt.Msg("received request")
	})
}

// responseStatus is the status the error handler will render for err.
func responseStatus(ctx *fiber.Ctx, err error) int {
	if err == nil {
		return ctx.Response().StatusCode()
	}

	var ae *apierr.APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

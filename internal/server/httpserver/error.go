package httpserver

import (
	"errors"
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/flog"
)

func handleCustomError(ctx *fiber.Ctx, e *apierr.APIError) error {
	flog.WarnFrom(ctx).
		Err(e).
		Str("evt.name", "http.error").
		Int("status", e.StatusCode).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	if e.Extras != nil {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var e *apierr.APIError
	if errors.As(err, &e) {
		return handleCustomError(ctx, e)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		// routing errors (404 for unknown routes, 405) are client errors
		re := apierr.New(fe.Code, "UNKNOWN_ERROR", fe.Message)
		if fe.Code == fiber.StatusNotFound {
			re.ErrorCode = apierr.CodeNotFound
		}
		return handleCustomError(ctx, re)
	}

	re := apierr.ErrInternalError

	flog.ErrorFrom(ctx).
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, re)
}

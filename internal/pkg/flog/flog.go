// Package flog provides fiber.Ctx helpers for carrying a request-scoped zerolog logger.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FromFiberCtx gets the logger in the request's user context.
func FromFiberCtx(ctx *fiber.Ctx) *zerolog.Logger {
	return log.Ctx(ctx.UserContext())
}

// NewHandlerMiddleware injects a copy of l into the request's user context.
func NewHandlerMiddleware(l zerolog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// copy the logger (including its context slice) so UpdateContext never races between requests
		c := l.With().Logger()
		ctx.SetUserContext(c.WithContext(ctx.UserContext()))
		return ctx.Next()
	}
}

func fieldHandler(fieldKey string, value func(ctx *fiber.Ctx) string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		v := value(ctx)
		FromFiberCtx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str(fieldKey, v)
		})
		return ctx.Next()
	}
}

// URLHandler adds the requested path as fieldKey.
func URLHandler(fieldKey string) fiber.Handler {
	return fieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.Path() })
}

// MethodHandler adds the request method as fieldKey.
func MethodHandler(fieldKey string) fiber.Handler {
	return fieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.Method() })
}

// RemoteAddrHandler adds the client IP (honoring trusted proxies) as fieldKey.
func RemoteAddrHandler(fieldKey string) fiber.Handler {
	return fieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.IP() })
}

// UserAgentHandler adds the request's user-agent as fieldKey.
func UserAgentHandler(fieldKey string) fiber.Handler {
	return fieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.Get(fiber.HeaderUserAgent) })
}

type idKey struct{}

// IDFromFiberCtx returns the request id associated to the *fiber.Ctx if any.
func IDFromFiberCtx(ctx *fiber.Ctx) (id xid.ID, ok bool) {
	if ctx == nil {
		return
	}
	return IDFromCtx(ctx.UserContext())
}

// IDFromCtx returns the request id associated to the context if any.
func IDFromCtx(ctx context.Context) (id xid.ID, ok bool) {
	id, ok = ctx.Value(idKey{}).(xid.ID)
	return
}

// CtxWithID adds the given request id to the context.
func CtxWithID(ctx context.Context, id xid.ID) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// RequestIDHandler assigns an xid to every request. The id is added to the logger as fieldKey and
// echoed in the headerName response header; either may be empty to skip it.
func RequestIDHandler(fieldKey, headerName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, ok := IDFromFiberCtx(ctx)
		if !ok {
			id = xid.New()
			ctx.SetUserContext(CtxWithID(ctx.UserContext(), id))
		}
		if fieldKey != "" {
			FromFiberCtx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str(fieldKey, id.String())
			})
		}
		if headerName != "" {
			ctx.Set(headerName, id.String())
		}
		return ctx.Next()
	}
}

// AccessHandler calls f after each request with the time it took. err is what the rest of the chain
// returned; the error handler has not rendered it yet.
func AccessHandler(f func(ctx *fiber.Ctx, duration time.Duration, err error)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		f(ctx, time.Since(start), err)
		return err
	}
}

func DebugFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Debug()
}

func InfoFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Info()
}

func WarnFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Warn()
}

func ErrorFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Error()
}

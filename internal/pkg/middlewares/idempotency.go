package middlewares

import (
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/flog"
	"mergington.dev/activities/internal/util/rekuest"
)

type IdempotencyConfig struct {
	// Lifetime is the maximum lifetime of an idempotency key.
	Lifetime time.Duration

	// KeyHeader is the name of the header that contains the idempotency key.
	KeyHeader string

	// KeepResponseHeaders is a list of headers that should be kept from the original response.
	// By default, all headers are kept.
	KeepResponseHeaders []string

	keepResponseHeadersMap map[string]struct{}

	// Storage is the storage backend for the idempotency key & its response data.
	Storage fiber.Storage

	RedSync *redsync.Redsync

	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool
}

type idempotencyResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Idempotency replays the first response recorded for an Idempotency-Key. Requests without the
// header, or with no storage configured, pass through untouched.
func Idempotency(config *IdempotencyConfig) fiber.Handler {
	config.keepResponseHeadersMap = make(map[string]struct{})
	for _, header := range config.KeepResponseHeaders {
		config.keepResponseHeadersMap[strings.ToLower(header)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if config.Storage == nil || config.RedSync == nil {
			return c.Next()
		}

		if config.Next != nil && config.Next(c) {
			return c.Next()
		}

		key := c.Get(config.KeyHeader)
		if key == "" {
			return c.Next()
		}

		if err := rekuest.Validate.Var(key, "max=128,printascii"); err != nil {
			return apierr.ErrInvalidReq.Msg("invalid idempotency key: idempotency key can only be at most %d printable ASCII characters", constant.IdempotencyKeyLengthLimit)
		}

		// the same key may be reused against a different route
		storeKey := c.Method() + " " + c.Path() + " " + key

		if exist, err := checkWriteIdempotencyCachedMessage(c, config, storeKey); exist {
			return err
		}

		mutex := config.RedSync.NewMutex("mutex:idempotency-request:"+storeKey,
			redsync.WithExpiry(time.Minute),
			redsync.WithTries(5),
			redsync.WithRetryDelay(time.Millisecond*250))

		if err := mutex.LockContext(c.UserContext()); err != nil {
			log.Err(err).
				Str("evt.name", "http.idempotency.lock.failed").
				Str("key", key).
				Msg("failed to lock idempotency key")
			return apierr.ErrConflict.Msg("idempotency key is locked by another in-flight request")
		}

		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Err(err).
					Str("evt.name", "http.idempotency.unlock.failed").
					Str("key", key).
					Msg("failed to unlock idempotency key")
			}
		}()

		if exist, err := checkWriteIdempotencyCachedMessage(c, config, storeKey); exist {
			return err
		}

		if err := c.Next(); err != nil {
			// error responses are rendered by the error handler later and are not replayed
			return err
		}

		responseBytes, err := marshalResponseToBytes(c, config)
		if err != nil {
			log.Error().
				Str("evt.name", "http.idempotency.response.marshal.failed").
				Err(err).
				Msg("error marshaling response to bytes")
			return err
		}

		if err := config.Storage.Set(storeKey, responseBytes, config.Lifetime); err != nil {
			log.Error().
				Str("evt.name", "http.idempotency.response.save.failed").
				Err(err).
				Msg("error saving the idempotency response")
			return err
		}

		c.Set(constant.IdempotencyHeader, "saved")

		return nil
	}
}

func marshalResponseToBytes(c *fiber.Ctx, conf *IdempotencyConfig) ([]byte, error) {
	var response idempotencyResponse

	response.StatusCode = c.Response().StatusCode()

	headers := c.GetRespHeaders()
	response.Headers = make(map[string]string, len(headers))
	for header, values := range headers {
		if len(values) == 0 {
			continue
		}
		if conf.KeepResponseHeaders != nil {
			if _, ok := conf.keepResponseHeadersMap[strings.ToLower(header)]; !ok {
				continue
			}
		}
		response.Headers[header] = values[0]
	}

	if body := c.Response().Body(); body != nil {
		response.Body = body
	}

	return msgpack.Marshal(response)
}

func unmarshalResponseToFiberResponse(c *fiber.Ctx, responseBytes []byte) error {
	var response idempotencyResponse
	if err := msgpack.Unmarshal(responseBytes, &response); err != nil {
		return err
	}

	c.Status(response.StatusCode)

	for header, value := range response.Headers {
		c.Set(header, value)
	}

	c.Set(constant.IdempotencyHeader, "hit")

	if len(response.Body) > 0 {
		return c.Send(response.Body)
	}

	return nil
}

func checkWriteIdempotencyCachedMessage(c *fiber.Ctx, conf *IdempotencyConfig, key string) (bool, error) {
	response, err := conf.Storage.Get(key)
	if err == nil && len(response) > 0 {
		flog.DebugFrom(c).
			Str("evt.name", "http.idempotency.hit").
			Str("key", key).
			Msg("idempotency key found in storage")
		return true, unmarshalResponseToFiberResponse(c, response)
	}

	return false, nil
}

package middlewares

import (
	"bufio"
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington.dev/activities/internal/pkg/apierr"
)

func accessLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		if line["evt.name"] == "http.request" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestLoggerReportsRenderedStatus(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	app := fiber.New()
	Logger(app)
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/conflict", func(c *fiber.Ctx) error {
		return apierr.ErrConflict.Detailed("Student is already signed up")
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		method string
		target string
		want   int
	}{
		{"GET", "/ok", fiber.StatusOK},
		{"POST", "/conflict", fiber.StatusBadRequest},
		{"GET", "/nowhere", fiber.StatusNotFound},
		{"GET", "/boom", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			buf.Reset()
			_, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)

			lines := accessLines(t, &buf)
			require.Len(t, lines, 1)
			assert.EqualValues(t, tt.want, lines[0]["status"])
			assert.Equal(t, tt.target, lines[0]["url"])
		})
	}
}

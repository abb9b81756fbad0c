package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tracingApp() *fiber.App {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetTraceID(c))
	})
	return app
}

func TestTracingGeneratesTraceID(t *testing.T) {
	app := tracingApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	id := resp.Header.Get("X-Trace-Id")
	_, parseErr := uuid.Parse(id)
	assert.NoError(t, parseErr)
}

func TestTracingReusesInboundTraceID(t *testing.T) {
	app := tracingApp()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "upstream-123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-123", resp.Header.Get("X-Trace-Id"))
}

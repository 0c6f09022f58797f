package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/internal/metrics"
)

func newApp(buf *bytes.Buffer) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(RequestLogger(logger))
	app.Use(Metrics())
	app.Get("/ok/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadGateway, "upstream") })
	return app
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		path   string
		status int
		level  string
	}{
		{"/ok/1", fiber.StatusOK, "info"},
		{"/missing", fiber.StatusNotFound, "warning"},
		{"/boom", fiber.StatusBadGateway, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			app := newApp(&buf)

			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, float64(tt.status), entry["status_code"])
			assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), entry["request_id"])
			assert.Equal(t, tt.path, entry["uri"])
		})
	}
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)
	counter := metrics.RequestCount.WithLabelValues("GET", "/ok/:id", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok/"+id, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/waitlisthq/waitlist-service/internal/config"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "not-a-level"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestLoggerConfigByEnvironment(t *testing.T) {
	dev := loggerConfig(config.LoggerConfig{Level: "debug", Development: true})
	assert.Equal(t, "console", dev.Encoding)
	assert.False(t, dev.DisableStacktrace)
	assert.Nil(t, dev.Sampling)
	assert.Equal(t, zap.DebugLevel, dev.Level.Level())

	prod := loggerConfig(config.LoggerConfig{Level: "WARN"})
	assert.Equal(t, "json", prod.Encoding)
	assert.True(t, prod.DisableStacktrace)
	require.NotNil(t, prod.Sampling)
	assert.Equal(t, zap.WarnLevel, prod.Level.Level())
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/waitlist", "POST", 201, 10*time.Millisecond)
	m.RecordRequest("/api/waitlist", "POST", 201, 30*time.Millisecond)
	m.RecordError("/api/contact", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.Requests["/api/waitlist|POST|201"])
	assert.Equal(t, int64(1), snap.Errors["/api/contact|POST|VALIDATION_FAILED"])
	assert.InDelta(t, 20.0, snap.AverageLatencyMs, 0.001)

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", "GET", 200, time.Millisecond)
	assert.Empty(t, nilMetrics.Snapshot().Requests)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusAccepted).SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusAccepted), entries[0].ContextMap()["status"])
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/ping|GET|202"])
}

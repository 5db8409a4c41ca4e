package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schoolboard-api/internal/observability"
)

func TestObservabilityCountsAPIRequests(t *testing.T) {
	app := fiber.New()
	logger := zerolog.New(io.Discard)
	Register(app, Config{Logger: &logger})
	app.Get("/api/v1/fees/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/metrics", observability.MetricsHandler())

	requests := observability.APIRequests().WithLabelValues(http.MethodGet, "/api/v1/fees/:id", "404")
	errorsCounter := observability.APIErrors().WithLabelValues(http.MethodGet, "/api/v1/fees/:id", "404")
	beforeRequests := testutil.ToFloat64(requests)
	beforeErrors := testutil.ToFloat64(errorsCounter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/fees/9", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	require.Equal(t, beforeRequests+1, testutil.ToFloat64(requests))
	require.Equal(t, beforeErrors+1, testutil.ToFloat64(errorsCounter))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "school_api_requests_total"))
}

func TestCorrelationIDReusesIncomingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetCorrelationID(c) + "|" + CorrelationIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-123", resp.Header.Get("X-Correlation-ID"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "req-123|req-123", string(body))
}

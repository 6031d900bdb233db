package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	before := testutil.ToFloat64(WebhookEvents.WithLabelValues("checkout.session.completed", OutcomeApplied))
	WebhookEvents.WithLabelValues("checkout.session.completed", OutcomeApplied).Inc()
	after := testutil.ToFloat64(WebhookEvents.WithLabelValues("checkout.session.completed", OutcomeApplied))
	assert.Equal(t, before+1, after)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "comapp_billing_webhook_events_total"))
}

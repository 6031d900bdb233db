package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/metrics"
)

// HttpRouter serves the operational endpoints.
type HttpRouter struct {
	deps Dependencies
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/healthz", h.deps.Health.HandleHealthz)

	// metrics
	if h.deps.Metrics.Password == "" {
		logging.For("router").Warn("METRICS_PASSWORD not set, /metrics and /monitor disabled")
		return
	}
	guard := basicauth.New(basicauth.Config{
		Users: map[string]string{
			h.deps.Metrics.User: h.deps.Metrics.Password,
		},
	})
	app.Get("/metrics", guard, metrics.Handler())
	app.Get("/monitor", guard, monitor.New(monitor.Config{Title: "com-app monitor"}))
}

func NewHttpRouter(deps Dependencies) *HttpRouter {
	return &HttpRouter{deps: deps}
}

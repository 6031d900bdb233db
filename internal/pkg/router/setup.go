package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itzsam-lol/com-app/app/controllers"
	"github.com/itzsam-lol/com-app/internal/pkg/config"
	"github.com/itzsam-lol/com-app/internal/pkg/middleware"
)

// Router registers a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the wired controllers and middlewares the routes need.
type Dependencies struct {
	Verifier middleware.TokenVerifier
	Users    middleware.UserLookup

	User    *controllers.UserController
	Payment *controllers.PaymentController
	Billing *controllers.BillingController
	Medical *controllers.MedicalController
	SOS     *controllers.SOSController
	Loyalty *controllers.LoyaltyController
	Health  *controllers.HealthController

	RateLimit config.RateLimitConfig
	// LimiterStorage backs the rate limiter; nil keeps counters in memory.
	LimiterStorage fiber.Storage
	Metrics        config.MetricsConfig
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	// Operational routes first so they stay outside auth and rate limits.
	setup(app, NewHttpRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}

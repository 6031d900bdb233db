package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	gormlogger "gorm.io/gorm/logger"

	"github.com/itzsam-lol/com-app/app/controllers"
	"github.com/itzsam-lol/com-app/app/repository"
	apiv1 "github.com/itzsam-lol/com-app/internal/api/v1"
	"github.com/itzsam-lol/com-app/internal/pkg/billing"
	"github.com/itzsam-lol/com-app/internal/pkg/cache"
	"github.com/itzsam-lol/com-app/internal/pkg/config"
	"github.com/itzsam-lol/com-app/internal/pkg/database"
	"github.com/itzsam-lol/com-app/internal/pkg/env"
	"github.com/itzsam-lol/com-app/internal/pkg/firebase"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/router"
)

func main() {
	app, cfg, err := NewApplication()
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to start application")
	}
	logging.Log.WithField("addr", cfg.ListenAddr()).Info("listening")
	logging.Log.Fatal(app.Listen(cfg.ListenAddr()))
}

func NewApplication() (*fiber.App, *config.Config, error) {
	env.SetupEnvFile()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.IsDev())

	gormLevel := gormlogger.Warn
	if cfg.IsDev() {
		gormLevel = gormlogger.Info
	}
	db, err := database.Connect(cfg.Database, gormLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	repos := repository.NewFactory(db)

	var planCache *cache.PlanCache
	var limiterStorage fiber.Storage
	if cfg.CacheEnabled() {
		planCache = cache.NewPlanCache(cache.NewClient(cfg.Cache), cfg.Cache.PlanTTL)
		limiterStorage = router.NewLimiterStorage(cfg.Cache)
	}

	if cfg.Stripe.SecretKey == "" || cfg.Stripe.WebhookSecret == "" {
		logging.For("billing").Warn("stripe keys not configured, checkout and webhooks will fail")
	}
	gateway := billing.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	billingService := billing.NewServiceFromDB(repos.DB(),
		billing.WithWebhookParser(gateway),
		billing.WithPlanObserver(planCache.OnPlanChanged),
	)
	checkout := billing.NewCheckoutBuilder(gateway, billing.CheckoutConfig{
		Prices:     cfg.StripePrices(),
		SuccessURL: cfg.CheckoutSuccessURL(),
		CancelURL:  cfg.CheckoutCancelURL(),
	})

	verifier, err := firebase.NewVerifier(cfg.Firebase.ProjectID, cfg.Firebase.JWKSURL)
	if err != nil {
		return nil, nil, fmt.Errorf("firebase: %w", err)
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "com-app",
		BodyLimit: 1 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), requestid.New(), logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// SWAGGER / OPENAPI
	if specPath := findOpenAPISpec(); specPath != "" {
		if _, err := apiv1.LoadSpec(context.Background(), specPath); err != nil {
			logging.For("app").WithError(err).Warn("openapi spec is invalid")
		}
		app.Use(swagger.New(swagger.Config{
			BasePath: "/docs/api/",
			FilePath: specPath,
			Path:     "v1",
		}))
	} else {
		logging.For("app").Warn("openapi spec not found, swagger ui disabled")
	}

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Verifier:       verifier,
		Users:          repos.GetUserRepository(),
		User:           controllers.NewUserController(repos.GetUserRepository(), billingService),
		Payment:        controllers.NewPaymentController(checkout, billingService, repos.GetUserRepository(), repos.GetPaymentRepository(), planCache),
		Billing:        controllers.NewBillingController(billingService),
		Medical:        controllers.NewMedicalController(repos.GetMedicalRepository()),
		SOS:            controllers.NewSOSController(repos.GetSOSRepository()),
		Loyalty:        controllers.NewLoyaltyController(repos.GetLoyaltyRepository()),
		Health:         controllers.NewHealthController(func() error { return database.Ping(db) }),
		RateLimit:      cfg.RateLimit,
		LimiterStorage: limiterStorage,
		Metrics:        cfg.Metrics,
	})

	return app, cfg, nil
}

// findOpenAPISpec looks for the OpenAPI document relative to the usual working directories.
func findOpenAPISpec() string {
	basePaths := []string{
		"./",     // project root
		"../../", // from cmd/comapp
	}
	for _, base := range basePaths {
		path := base + "public/docs/v1/openapi.yml"
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/itzsam-lol/com-app/internal/pkg/env"
	"github.com/itzsam-lol/com-app/internal/pkg/entitlements"
)

// Config is the typed application configuration.
type Config struct {
	AppEnv      string   `env:"APP_ENV" envDefault:"prod"`
	AppHost     string   `env:"APP_HOST" envDefault:"0.0.0.0"`
	AppPort     string   `env:"APP_PORT" envDefault:"4000"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	FrontendURL string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	Database  DatabaseConfig  `envPrefix:"DB_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`
	Stripe    StripeConfig    `envPrefix:"STRIPE_"`
	Firebase  FirebaseConfig  `envPrefix:"FIREBASE_"`
	Metrics   MetricsConfig   `envPrefix:"METRICS_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

type DatabaseConfig struct {
	Driver   string `env:"DRIVER" envDefault:"mysql"`
	Host     string `env:"HOST" envDefault:"127.0.0.1"`
	Port     string `env:"PORT"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"comapp"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type CacheConfig struct {
	Host     string        `env:"HOST"`
	Port     int           `env:"PORT" envDefault:"6379"`
	Password string        `env:"PASSWORD"`
	PlanTTL  time.Duration `env:"PLAN_TTL" envDefault:"5m"`
}

type StripeConfig struct {
	SecretKey       string `env:"SECRET_KEY"`
	WebhookSecret   string `env:"WEBHOOK_SECRET"`
	PricePremium    string `env:"PRICE_PREMIUM"`
	PriceEnterprise string `env:"PRICE_ENTERPRISE"`
}

type FirebaseConfig struct {
	ProjectID string `env:"PROJECT_ID"`
	JWKSURL   string `env:"JWKS_URL" envDefault:"https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"`
}

type MetricsConfig struct {
	User     string `env:"USER" envDefault:"admin"`
	Password string `env:"PASSWORD"`
}

type RateLimitConfig struct {
	Max    int           `env:"MAX" envDefault:"120"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
}

// Load reads configuration from the loaded .env values and the process env.
func Load() (*Config, error) {
	return LoadFrom(appenv.Environ())
}

// LoadFrom parses configuration from an explicit environment map.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Port == "" {
		cfg.Database.Port = cfg.Database.defaultPort()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c DatabaseConfig) defaultPort() string {
	if c.Driver == "postgres" {
		return "5432"
	}
	return "3306"
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.RateLimit.Max <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_MAX must be positive")
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// ListenAddr is the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

// CheckoutSuccessURL is where the processor sends the user after paying.
func (c *Config) CheckoutSuccessURL() string {
	return strings.TrimRight(c.FrontendURL, "/") + "/subscribe?success=1"
}

// CheckoutCancelURL is where the processor sends the user after aborting.
func (c *Config) CheckoutCancelURL() string {
	return strings.TrimRight(c.FrontendURL, "/") + "/subscribe?canceled=1"
}

// StripePrices maps purchasable plans to configured price ids. Plans without
// a price are left out and therefore cannot be bought.
func (c *Config) StripePrices() map[entitlements.Plan]string {
	prices := map[entitlements.Plan]string{}
	if p := strings.TrimSpace(c.Stripe.PricePremium); p != "" {
		prices[entitlements.PlanPremium] = p
	}
	if p := strings.TrimSpace(c.Stripe.PriceEnterprise); p != "" {
		prices[entitlements.PlanEnterprise] = p
	}
	return prices
}

// CacheEnabled reports whether a Redis compatible cache host is configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Cache.Host) != ""
}

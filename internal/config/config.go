package config

import (
	"fmt"
	"strings"

	"prepaid-card-backend/internal/model"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	Database    Database

	Stripe  Stripe  `envPrefix:"STRIPE_"`
	Pricing Pricing `envPrefix:"PRICING_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8000"`
}

type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	URL    string `env:"DATABASE_URL"`
	Name   string `env:"DATABASE_NAME"`
}

type Stripe struct {
	SecretKey string `env:"SECRET_KEY"`
}

type Pricing struct {
	CardIssuePrice int    `env:"CARD_ISSUE_PRICE" envDefault:"5"`
	TopupOptions   []int  `env:"TOPUP_OPTIONS" envDefault:"10,20,30,50" envSeparator:","`
	Currency       string `env:"CURRENCY" envDefault:"eur"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Pricing.CardIssuePrice < 0 {
		return nil, fmt.Errorf("card issue price must not be negative")
	}
	for _, amount := range cfg.Pricing.TopupOptions {
		if amount < 0 {
			return nil, fmt.Errorf("top-up option %d must not be negative", amount)
		}
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.Pricing.Currency = strings.ToLower(strings.TrimSpace(cfg.Pricing.Currency))
	return cfg, nil
}

// PaymentProvider is stripe when a secret key is present, mock otherwise.
func (c *Config) PaymentProvider() model.PaymentProvider {
	if strings.TrimSpace(c.Stripe.SecretKey) != "" {
		return model.PaymentProviderStripe
	}
	return model.PaymentProviderMock
}

func (c *Config) PricingConfig() model.PricingConfig {
	options := make([]int, len(c.Pricing.TopupOptions))
	copy(options, c.Pricing.TopupOptions)

	return model.PricingConfig{
		CardIssuePrice:  c.Pricing.CardIssuePrice,
		TopupOptions:    options,
		Currency:        c.Pricing.Currency,
		PaymentProvider: c.PaymentProvider(),
	}
}

func (c *Config) Address() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

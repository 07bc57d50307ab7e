// Package config loads the process configuration from the environment and the
// per season pool configuration from YAML files.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// App is the process configuration.
type App struct {
	ConnString      string `env:"POSTGRES_CONN_STR,required"`
	Port            int    `env:"PORT" envDefault:"3000"`
	SeasonConfigDir string `env:"SEASON_CONFIG_DIR" envDefault:"config/seasons"`
	SleeperURL      string `env:"SLEEPER_URL" envDefault:"https://api.sleeper.app/v1"`

	PaymentURL         string `env:"PAYMENT_URL"`
	PaymentAccessToken string `env:"PAYMENT_ACCESS_TOKEN"`

	AdminUser     string `env:"ADMIN_USER"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Cron spec for the resolution cycle, empty disables it.
	ResolveSchedule string `env:"RESOLVE_SCHEDULE"`
	AutoPay         bool   `env:"AUTO_PAY"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadApp() (*App, error) {
	return parseApp(env.Options{})
}

func parseApp(opts env.Options) (*App, error) {
	cfg, err := env.ParseAsWithOptions[App](opts)
	if err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	return &cfg, nil
}

// AdminEnabled reports whether the admin routes can be served.
func (a *App) AdminEnabled() bool {
	return a.AdminUser != "" && a.AdminPassword != ""
}

// PaymentsEnabled reports whether a payment provider is configured.
func (a *App) PaymentsEnabled() bool {
	return a.PaymentURL != "" && a.PaymentAccessToken != ""
}

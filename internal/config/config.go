package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application settings (in-memory representation).
// Persistence of the search parameters is handled by internal/db;
// connection settings come from the environment.
type Config struct {
	ServerURL   string        `json:"server_url" envconfig:"SERVER_URL"`
	HTTPTimeout time.Duration `json:"http_timeout" envconfig:"HTTP_TIMEOUT"`
	CacheTTL    time.Duration `json:"cache_ttl" envconfig:"CACHE_TTL"`
	MaxAttempts int           `json:"max_attempts" envconfig:"MAX_ATTEMPTS"`

	// Last-used search parameters, pre-filled into the form.
	FromStation   string  `json:"from_station"`
	ToStation     string  `json:"to_station"`
	CargoCapacity float64 `json:"cargo_capacity"`
	MinProfit     float64 `json:"min_profit"`
	SalesTax      float64 `json:"sales_tax"`
}

// Default returns a Config with sensible defaults.
// Cargo and profit defaults match the aggregation server's own.
func Default() *Config {
	return &Config{
		ServerURL:     "http://localhost:5000",
		HTTPTimeout:   30 * time.Second,
		CacheTTL:      5 * time.Minute,
		MaxAttempts:   3,
		FromStation:   "jita",
		ToStation:     "dodixie",
		CargoCapacity: 33500,
		MinProfit:     100000,
		SalesTax:      8,
	}
}

// FromEnv returns the default config with ROUTES_* environment overrides
// applied (ROUTES_SERVER_URL, ROUTES_HTTP_TIMEOUT, ...).
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := envconfig.Process("routes", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

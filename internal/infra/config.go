package infra

import (
	"errors"
	"fmt"
	"os"

	"fx_orders/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds every application setting. Values are loaded from YAML and
// then overridden by environment variables where present.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Market struct {
		// BaseCurrency is the currency every price is converted into.
		// Its own rate should be 1.
		BaseCurrency string `yaml:"base_currency"`
		// Rates maps currency codes to units-per-base seed rates
		Rates map[string]float64 `yaml:"rates"`
	} `yaml:"market"`

	Generator struct {
		Titles     []string `yaml:"titles"`
		MaxPrice   float64  `yaml:"max_price"`
		SeedOrders int      `yaml:"seed_orders"`
	} `yaml:"generator"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Journal struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"journal"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Market.BaseCurrency == "" {
		return &domain.ConfigError{Field: "market.base_currency", Err: errors.New("required")}
	}
	if len(c.Market.Rates) == 0 {
		return &domain.ConfigError{Field: "market.rates", Err: errors.New("at least one seed rate is required")}
	}
	if _, ok := c.Market.Rates[c.Market.BaseCurrency]; !ok {
		return &domain.ConfigError{Field: "market.rates", Err: fmt.Errorf("missing entry for base currency %s", c.Market.BaseCurrency)}
	}
	if len(c.Generator.Titles) == 0 {
		return &domain.ConfigError{Field: "generator.titles", Err: errors.New("at least one title is required")}
	}
	if c.Generator.MaxPrice <= 0 {
		return &domain.ConfigError{Field: "generator.max_price", Err: errors.New("must be positive")}
	}
	if c.Generator.SeedOrders < 0 {
		return &domain.ConfigError{Field: "generator.seed_orders", Err: errors.New("must not be negative")}
	}
	if c.Server.Addr == "" {
		return &domain.ConfigError{Field: "server.addr", Err: errors.New("required")}
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return &domain.ConfigError{Field: "journal.path", Err: errors.New("required when journal is enabled")}
	}
	return nil
}

// SeedRates converts the configured float rates into the domain table
func (c *Config) SeedRates() domain.RateTable {
	table := make(domain.RateTable, len(c.Market.Rates))
	for code, rate := range c.Market.Rates {
		table[domain.Currency(code)] = decimal.NewFromFloat(rate)
	}
	return table
}

// overrideWithEnv replaces settings from environment variables when set
func overrideWithEnv(cfg *Config) {
	if addr := os.Getenv("FX_SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if path := os.Getenv("FX_JOURNAL_PATH"); path != "" {
		cfg.Journal.Path = path
	}
	if level := os.Getenv("FX_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

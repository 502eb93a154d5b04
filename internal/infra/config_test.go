package infra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fx_orders/internal/domain"

	"github.com/shopspring/decimal"
)

const validYAML = `
market:
  base_currency: GBP
  rates:
    GBP: 1.0
    USD: 1.3
generator:
  titles: [Paperclips]
  max_price: 50.0
  seed_orders: 2
server:
  addr: localhost:9999
journal:
  enabled: false
logging:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Market.BaseCurrency != "GBP" {
		t.Errorf("expected GBP, got %s", cfg.Market.BaseCurrency)
	}
	if cfg.Generator.SeedOrders != 2 {
		t.Errorf("expected 2 seed orders, got %d", cfg.Generator.SeedOrders)
	}

	rates := cfg.SeedRates()
	if !rates[domain.Currency("USD")].Equal(decimal.NewFromFloat(1.3)) {
		t.Errorf("expected USD rate 1.3, got %s", rates["USD"])
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, domain.ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("FX_SERVER_ADDR", "localhost:7777")

	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Addr != "localhost:7777" {
		t.Errorf("expected env override, got %s", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mutate func(*Config)
		field string
	}{
		{"missing base currency", func(c *Config) { c.Market.BaseCurrency = "" }, "market.base_currency"},
		{"no rates", func(c *Config) { c.Market.Rates = nil }, "market.rates"},
		{"base currency not seeded", func(c *Config) { c.Market.BaseCurrency = "CHF" }, "market.rates"},
		{"no titles", func(c *Config) { c.Generator.Titles = nil }, "generator.titles"},
		{"bad max price", func(c *Config) { c.Generator.MaxPrice = 0 }, "generator.max_price"},
		{"negative seed orders", func(c *Config) { c.Generator.SeedOrders = -1 }, "generator.seed_orders"},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"journal without path", func(c *Config) { c.Journal.Enabled = true; c.Journal.Path = "" }, "journal.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, validYAML))
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			var cfgErr *domain.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

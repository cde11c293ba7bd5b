package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}

	want := map[string]string{
		"DJIA":    "^DJI",
		"SP500":   "^GSPC",
		"NASDAQ":  "^IXIC",
		"NIFTY50": "^NSEI",
	}
	if len(cfg.Tickers) != len(want) {
		t.Fatalf("Expected %d tickers, got %d", len(want), len(cfg.Tickers))
	}
	for name, symbol := range want {
		got, ok := cfg.Symbol(name)
		if !ok {
			t.Errorf("Expected ticker %s to be configured", name)
			continue
		}
		if got != symbol {
			t.Errorf("Ticker %s: expected symbol %s, got %s", name, symbol, got)
		}
	}

	if cfg.Period != "max" {
		t.Errorf("Expected default period max, got %s", cfg.Period)
	}
	if len(cfg.Thresholds) != 10 || cfg.Thresholds[0] != 1 || cfg.Thresholds[9] != 10 {
		t.Errorf("Expected thresholds 1..10, got %v", cfg.Thresholds)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing config file should not error: %v", err)
	}
	if len(cfg.Tickers) != 4 {
		t.Errorf("Expected default tickers, got %v", cfg.Tickers)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tickers:
  - name: FTSE100
    symbol: ^FTSE
period: 5y
output_dir: out
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Tickers) != 1 || cfg.Tickers[0].Name != "FTSE100" {
		t.Errorf("Expected configured ticker list to replace defaults, got %v", cfg.Tickers)
	}
	if cfg.Period != "5y" {
		t.Errorf("Expected period 5y, got %s", cfg.Period)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	// Untouched fields keep defaults
	if cfg.DataDir != "data" {
		t.Errorf("Expected default data dir, got %s", cfg.DataDir)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := map[string]func(*Config){
		"no tickers":        func(c *Config) { c.Tickers = nil },
		"missing symbol":    func(c *Config) { c.Tickers = []Ticker{{Name: "X"}} },
		"duplicate name":    func(c *Config) { c.Tickers = append(c.Tickers, Ticker{Name: "DJIA", Symbol: "^DJI"}) },
		"empty period":      func(c *Config) { c.Period = "" },
		"bad port":          func(c *Config) { c.Server.Port = 0 },
		"unsorted cutoffs":  func(c *Config) { c.Thresholds = []float64{2, 1} },
		"negative cutoff":   func(c *Config) { c.Thresholds = []float64{-1, 2} },
	}

	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestSymbolUnknownTicker(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := cfg.Symbol("DOGE"); ok {
		t.Error("Expected unknown ticker to miss")
	}
}

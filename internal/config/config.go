package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Tickers    []Ticker     `yaml:"tickers"`
	Period     string       `yaml:"period"`
	DataDir    string       `yaml:"data_dir"`
	OutputDir  string       `yaml:"output_dir"`
	HistoryDB  string       `yaml:"history_db"`
	Thresholds []float64    `yaml:"thresholds"`
	Server     ServerConfig `yaml:"server"`
	API        APIConfig    `yaml:"api"`
}

// Ticker maps a display name to the symbol used by the data provider.
// The list is ordered; the web form and batch runs follow it.
type Ticker struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// APIConfig holds API provider configurations
type APIConfig struct {
	AlphaVantage ProviderConfig `yaml:"alphavantage"`
}

// ProviderConfig holds individual provider settings
type ProviderConfig struct {
	Key       string `yaml:"key"`
	RateLimit int    `yaml:"rate_limit"` // requests per minute
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Tickers: []Ticker{
			// Dow Jones Industrial Average
			{Name: "DJIA", Symbol: "^DJI"},
			// S&P 500
			{Name: "SP500", Symbol: "^GSPC"},
			// NASDAQ Composite
			{Name: "NASDAQ", Symbol: "^IXIC"},
			// NIFTY 50
			{Name: "NIFTY50", Symbol: "^NSEI"},
		},
		Period:     "max",
		DataDir:    "data",
		OutputDir:  "output",
		HistoryDB:  "",
		Thresholds: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Server: ServerConfig{
			Port: 8000,
		},
		API: APIConfig{
			AlphaVantage: ProviderConfig{
				Key:       os.Getenv("ALPHAVANTAGE_API_KEY"),
				RateLimit: 5,
			},
		},
	}
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Override with environment variables if set
	if key := os.Getenv("ALPHAVANTAGE_API_KEY"); key != "" {
		cfg.API.AlphaVantage.Key = key
	}

	return cfg, nil
}

// Symbol resolves a ticker name to its provider symbol.
func (c *Config) Symbol(name string) (string, bool) {
	for _, t := range c.Tickers {
		if t.Name == name {
			return t.Symbol, true
		}
	}
	return "", false
}

// TickerNames returns the configured ticker names in order.
func (c *Config) TickerNames() []string {
	names := make([]string, len(c.Tickers))
	for i, t := range c.Tickers {
		names[i] = t.Name
	}
	return names
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("at least one ticker is required")
	}
	seen := make(map[string]bool, len(c.Tickers))
	for _, t := range c.Tickers {
		if t.Name == "" || t.Symbol == "" {
			return fmt.Errorf("ticker entries need both name and symbol")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate ticker name %q", t.Name)
		}
		seen[t.Name] = true
	}
	if c.Period == "" {
		return fmt.Errorf("period must not be empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	prev := 0.0
	for _, t := range c.Thresholds {
		if t <= prev {
			return fmt.Errorf("thresholds must be positive and strictly increasing")
		}
		prev = t
	}
	return nil
}

// config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradeledger/fees"
	"github.com/rustyeddy/tradeledger/market"
)

// Config is the complete engine configuration.
type Config struct {
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Defaults DefaultsConfig `json:"defaults" yaml:"defaults"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// EngineConfig selects between the accepted engine variants.
type EngineConfig struct {
	// SimulateBorrowing enables the margin-loan replay on leveraged
	// trades.
	SimulateBorrowing bool `json:"simulate_borrowing" yaml:"simulate_borrowing"`
	// FuturesFeeRedirect makes futures-flagged margin positions use the
	// Futures fee row.
	FuturesFeeRedirect bool `json:"futures_fee_redirect" yaml:"futures_fee_redirect"`
}

// DefaultsConfig pre-fills the trade-entry form.
type DefaultsConfig struct {
	Exchange          market.Exchange  `json:"exchange" yaml:"exchange"`
	Market            market.Type      `json:"market" yaml:"market"`
	OrderType         market.OrderType `json:"order_type" yaml:"order_type"`
	Leverage          float64          `json:"leverage" yaml:"leverage"`
	ManualFeePercent  float64          `json:"manual_fee_percent" yaml:"manual_fee_percent"`
}

// JournalConfig selects where saved ledger entries are persisted.
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	PositionsFile string `json:"positions_file,omitempty" yaml:"positions_file,omitempty"`
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// FeeResolver builds the resolver the engine options call for.
func (c *Config) FeeResolver() fees.Resolver {
	return fees.Resolver{FuturesRedirect: c.Engine.FuturesFeeRedirect}
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields the
// file omits keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validExchange(c.Defaults.Exchange) {
		return fmt.Errorf("unknown exchange: %s", c.Defaults.Exchange)
	}
	if !validMarket(c.Defaults.Market) {
		return fmt.Errorf("unknown market: %s", c.Defaults.Market)
	}
	if !validOrderType(c.Defaults.OrderType) {
		return fmt.Errorf("unknown order type: %s", c.Defaults.OrderType)
	}
	if c.Defaults.Leverage < 1 {
		return fmt.Errorf("defaults.leverage must be at least 1")
	}
	if c.Defaults.ManualFeePercent < 0 {
		return fmt.Errorf("defaults.manual_fee_percent must not be negative")
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.PositionsFile == "" || c.Journal.TradesFile == "" {
			return fmt.Errorf("journal positions_file and trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults: both engine
// variants enabled, a 10x isolated-margin Binance form, no journal.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			SimulateBorrowing:  true,
			FuturesFeeRedirect: true,
		},
		Defaults: DefaultsConfig{
			Exchange:         market.Binance,
			Market:           market.IsolatedMargin,
			OrderType:        market.Limit,
			Leverage:         10,
			ManualFeePercent: 0.1,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

func validExchange(e market.Exchange) bool {
	for _, x := range market.Exchanges {
		if x == e {
			return true
		}
	}
	return false
}

func validMarket(m market.Type) bool {
	for _, x := range market.Types {
		if x == m {
			return true
		}
	}
	return false
}

func validOrderType(o market.OrderType) bool {
	for _, x := range market.OrderTypes {
		if x == o {
			return true
		}
	}
	return false
}

// Package config loads and validates backtest run configuration files
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const dateFormat = "2006-01-02"

var supportedCurrencies = map[string]struct{}{
	"USD": {}, "GBP": {}, "EUR": {}, "JPY": {}, "CHF": {}, "AUD": {}, "CAD": {},
}

// Default returns a runnable configuration with conventional settings
func Default() *Config {
	return &Config{
		RunName:       "backtest-" + time.Now().UTC().Format("2006-01-02-15-04-05"),
		StrategyName:  "buyandhold",
		StartDate:     "2020-01-01",
		EndDate:       "2020-12-31",
		Currency:      "USD",
		InitialFunds:  100000,
		PortfolioID:   "port-1",
		PortfolioName: "Primary",
		Fee:           Fee{Kind: "zero"},
		Sizing:        Sizing{TargetValue: 10000},
		Rebalance:     Rebalance{Kind: "daily"},
	}
}

// Load reads a configuration file, layering it over the defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for construction-time errors
func (c *Config) Validate() error {
	if _, ok := supportedCurrencies[c.Currency]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedCurrency, c.Currency)
	}
	start, err := c.Start()
	if err != nil {
		return err
	}
	end, err := c.End()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %s before %s", ErrBadDateRange, c.EndDate, c.StartDate)
	}
	if c.InitialFunds < 0 {
		return fmt.Errorf("%w: initial funds %v", ErrNegativeAmount, c.InitialFunds)
	}
	if c.Sizing.DefaultQuantity < 0 || c.Sizing.TargetValue < 0 {
		return fmt.Errorf("%w: sizing %+v", ErrNegativeAmount, c.Sizing)
	}
	switch strings.ToLower(c.Fee.Kind) {
	case "zero", "percent":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFeeModel, c.Fee.Kind)
	}
	if c.Fee.CommissionPct < 0 || c.Fee.TaxPct < 0 {
		return fmt.Errorf("%w: fee rates %+v", ErrNegativeAmount, c.Fee)
	}
	switch strings.ToLower(c.Rebalance.Kind) {
	case "buyandhold", "daily", "weekly", "endofmonth":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSchedule, c.Rebalance.Kind)
	}
	return nil
}

// Start parses the configured start date as a UTC day
func (c *Config) Start() (time.Time, error) {
	return time.ParseInLocation(dateFormat, c.StartDate, time.UTC)
}

// End parses the configured end date as a UTC day
func (c *Config) End() (time.Time, error) {
	return time.ParseInLocation(dateFormat, c.EndDate, time.UTC)
}

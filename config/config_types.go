package config

import "errors"

var (
	// ErrUnsupportedCurrency is raised for a currency outside the supported
	// account denominations
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrUnknownFeeModel is raised for an unrecognised fee model kind
	ErrUnknownFeeModel = errors.New("unknown fee model")
	// ErrUnknownSchedule is raised for an unrecognised rebalance schedule
	ErrUnknownSchedule = errors.New("unknown rebalance schedule")
	// ErrBadDateRange is raised when the end date is before the start date
	ErrBadDateRange = errors.New("end date is before start date")
	// ErrNegativeAmount is raised for negative funds or sizing amounts
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Fee configures the commission model applied to executions
type Fee struct {
	// Kind is "zero" or "percent"
	Kind          string  `mapstructure:"kind"`
	CommissionPct float64 `mapstructure:"commission-pct"`
	TaxPct        float64 `mapstructure:"tax-pct"`
}

// Sizing configures how signals are converted into order quantities
type Sizing struct {
	DefaultQuantity float64 `mapstructure:"default-quantity"`
	TargetValue     float64 `mapstructure:"target-value"`
}

// Rebalance configures the schedule on which the strategy is consulted
type Rebalance struct {
	// Kind is "buyandhold", "daily", "weekly" or "endofmonth"
	Kind      string `mapstructure:"kind"`
	Weekday   string `mapstructure:"weekday"`
	PreMarket bool   `mapstructure:"pre-market"`
}

// Report configures the optional result sinks
type Report struct {
	EquityCSVPath  string `mapstructure:"equity-csv-path"`
	SQLitePath     string `mapstructure:"sqlite-path"`
	EquityChartPNG string `mapstructure:"equity-chart-png"`
}

// Config is the complete configuration of one backtest run
type Config struct {
	RunName       string    `mapstructure:"run-name"`
	StrategyName  string    `mapstructure:"strategy"`
	StartDate     string    `mapstructure:"start-date"`
	EndDate       string    `mapstructure:"end-date"`
	Currency      string    `mapstructure:"currency"`
	InitialFunds  float64   `mapstructure:"initial-funds"`
	PortfolioID   string    `mapstructure:"portfolio-id"`
	PortfolioName string    `mapstructure:"portfolio-name"`
	DataDir       string    `mapstructure:"data-dir"`
	Fee           Fee       `mapstructure:"fee"`
	Sizing        Sizing    `mapstructure:"sizing"`
	Rebalance     Rebalance `mapstructure:"rebalance"`
	Report        Report    `mapstructure:"report"`
	Verbose       bool      `mapstructure:"verbose"`
}

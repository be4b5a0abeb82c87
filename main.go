package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/quantave/backtester/broker"
	"github.com/quantave/backtester/clock"
	"github.com/quantave/backtester/config"
	"github.com/quantave/backtester/data"
	"github.com/quantave/backtester/engine"
	"github.com/quantave/backtester/eventtypes/bar"
	"github.com/quantave/backtester/eventtypes/event"
	"github.com/quantave/backtester/exchange"
	"github.com/quantave/backtester/fee"
	"github.com/quantave/backtester/log"
	"github.com/quantave/backtester/order"
	"github.com/quantave/backtester/rebalance"
	"github.com/quantave/backtester/report"
	"github.com/quantave/backtester/size"
	"github.com/quantave/backtester/statistics"
	"github.com/quantave/backtester/strategies"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "event driven portfolio backtesting over daily bar data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the run configuration file",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if cfg.Verbose {
		log.SetGlobalLogDebug(true)
	}

	start, err := cfg.Start()
	if err != nil {
		return err
	}
	end, err := cfg.End()
	if err != nil {
		return err
	}

	src := data.NewDailyBarSource()
	if err = src.LoadCSVDir(cfg.DataDir); err != nil {
		return err
	}

	feeModel, err := feeModelFor(cfg)
	if err != nil {
		return err
	}
	b, err := broker.New(start, cfg.Currency, exchange.Equity{}, src,
		broker.WithInitialFunds(decimal.NewFromFloat(cfg.InitialFunds)),
		broker.WithFeeModel(feeModel))
	if err != nil {
		return err
	}
	if err = b.CreatePortfolio(cfg.PortfolioID, cfg.PortfolioName); err != nil {
		return err
	}
	if err = b.SubscribeFundsToPortfolio(cfg.PortfolioID, decimal.NewFromFloat(cfg.InitialFunds)); err != nil {
		return err
	}

	strat, err := strategies.LoadStrategyByName(cfg.StrategyName)
	if err != nil {
		return err
	}
	sizer := &size.Size{
		DefaultQuantity: decimal.NewFromFloat(cfg.Sizing.DefaultQuantity),
		TargetValue:     decimal.NewFromFloat(cfg.Sizing.TargetValue),
	}

	schedule, err := scheduleFor(cfg, start, end)
	if err != nil {
		return err
	}
	clk, err := clock.New(start, end, true, true)
	if err != nil {
		return err
	}

	stats := statistics.New(cfg.StrategyName)
	session, err := engine.NewSession(clk, b, stats, cfg.PortfolioID, schedule,
		rebalancerFor(src, strat, sizer))
	if err != nil {
		return err
	}

	if cfg.Report.EquityCSVPath != "" {
		w, err := report.NewCSVWriter(cfg.Report.EquityCSVPath)
		if err != nil {
			return err
		}
		defer w.Close()
		session.EquityCSV = w
	}
	if cfg.Report.SQLitePath != "" {
		store, err := report.OpenStore(cfg.Report.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()
		session.Store = store
		session.RunName = cfg.RunName
	}

	if err = session.Run(); err != nil {
		return err
	}
	stats.PrintResult()

	if cfg.Report.EquityChartPNG != "" {
		points := make([]report.EquityPoint, len(stats.Equity))
		for i := range stats.Equity {
			points[i] = report.EquityPoint{
				Timestamp: stats.Equity[i].Timestamp,
				Equity:    stats.Equity[i].Equity,
			}
		}
		png, err := report.RenderEquityChart(cfg.RunName, points)
		if err != nil {
			return err
		}
		if err = os.WriteFile(cfg.Report.EquityChartPNG, png, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func feeModelFor(cfg *config.Config) (fee.Model, error) {
	switch strings.ToLower(cfg.Fee.Kind) {
	case "", "zero":
		return fee.Zero{}, nil
	case "percent":
		return fee.NewPercent(
			decimal.NewFromFloat(cfg.Fee.CommissionPct),
			decimal.NewFromFloat(cfg.Fee.TaxPct))
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownFeeModel, cfg.Fee.Kind)
	}
}

func scheduleFor(cfg *config.Config, start, end time.Time) ([]time.Time, error) {
	switch strings.ToLower(cfg.Rebalance.Kind) {
	case "buyandhold":
		return rebalance.BuyAndHold(start), nil
	case "daily":
		return rebalance.Daily(start, end, cfg.Rebalance.PreMarket)
	case "weekly":
		return rebalance.Weekly(start, end, cfg.Rebalance.Weekday, cfg.Rebalance.PreMarket)
	case "endofmonth":
		return rebalance.EndOfMonth(start, end, cfg.Rebalance.PreMarket)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSchedule, cfg.Rebalance.Kind)
	}
}

// rebalancerFor consults the strategy with the latest known price of every
// asset at each scheduled rebalance and sizes the resulting signals
func rebalancerFor(src *data.DailyBarSource, strat strategies.Handler, sizer *size.Size) engine.Rebalancer {
	return func(dt time.Time) ([]*order.Order, error) {
		var orders []*order.Order
		for _, asset := range src.Assets() {
			bid, ask, ok := src.LatestBidAskPrice(dt, asset)
			if !ok {
				continue
			}
			mid := data.Mid(bid, ask)
			sig, err := strat.OnBar(&bar.Bar{
				Base:  event.Base{Time: dt, Asset: asset},
				Close: mid,
			})
			if err != nil {
				return nil, err
			}
			if sig == nil {
				continue
			}
			o, err := sizer.SizeSignal(sig)
			if err != nil {
				return nil, err
			}
			if o != nil {
				orders = append(orders, o)
			}
		}
		return orders, nil
	}
}

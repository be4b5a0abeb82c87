// Package statistics accumulates the equity curve of a backtest run and
// derives summary performance figures from it
package statistics

import (
	"errors"
	"math"
	"time"

	"github.com/quantave/backtester/log"
	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
)

var errNoEquityPoints = errors.New("no equity points recorded")

var oneHundred = decimal.NewFromInt(100)

// New returns an empty statistic tracker for a named strategy run
func New(strategyName string) *Statistic {
	return &Statistic{StrategyName: strategyName}
}

// AddEquityPoint appends an equity snapshot, deriving its period return and
// drawdown from the curve so far
func (s *Statistic) AddEquityPoint(dt time.Time, equity decimal.Decimal) {
	point := EquityPoint{Timestamp: dt, Equity: equity}
	if len(s.Equity) > 0 {
		prev := s.Equity[len(s.Equity)-1]
		if !prev.Equity.IsZero() {
			point.EquityReturn = equity.Sub(prev.Equity).Div(prev.Equity).Mul(oneHundred)
		}
	}
	if equity.GreaterThan(s.High.Equity) || len(s.Equity) == 0 {
		s.High = point
	}
	if equity.LessThan(s.Low.Equity) || len(s.Equity) == 0 {
		s.Low = point
	}
	if !s.High.Equity.IsZero() {
		point.DrawnDown = equity.Sub(s.High.Equity).Div(s.High.Equity).Mul(oneHundred)
	}
	s.Equity = append(s.Equity, point)
}

// TrackTransaction records an executed fill
func (s *Statistic) TrackTransaction(t *transaction.Transaction) {
	if t == nil {
		return
	}
	s.TransactionHistory = append(s.TransactionHistory, t)
}

// Transactions returns the fills recorded so far
func (s *Statistic) Transactions() []*transaction.Transaction {
	return s.TransactionHistory
}

// TotalEquityReturn is the percentage change between the first and last
// recorded equity points
func (s *Statistic) TotalEquityReturn() (decimal.Decimal, error) {
	if len(s.Equity) == 0 {
		return decimal.Zero, errNoEquityPoints
	}
	first := s.Equity[0].Equity
	if first.IsZero() {
		return decimal.Zero, errNoEquityPoints
	}
	last := s.Equity[len(s.Equity)-1].Equity
	return last.Sub(first).Div(first).Mul(oneHundred), nil
}

// MaxDrawdown is the deepest peak to trough decline on the curve, as a
// negative percentage
func (s *Statistic) MaxDrawdown() decimal.Decimal {
	return s.maxDrawdownPoint().DrawnDown
}

// MaxDrawdownTime is when the deepest drawdown was recorded
func (s *Statistic) MaxDrawdownTime() time.Time {
	return s.maxDrawdownPoint().Timestamp
}

// MaxDrawdownDuration is the time between the peak and the deepest trough
func (s *Statistic) MaxDrawdownDuration() time.Duration {
	trough := s.maxDrawdownPoint()
	peak := trough
	for i := range s.Equity {
		if s.Equity[i].Timestamp.After(trough.Timestamp) {
			break
		}
		if s.Equity[i].Equity.GreaterThan(peak.Equity) {
			peak = s.Equity[i]
		}
	}
	return trough.Timestamp.Sub(peak.Timestamp)
}

func (s *Statistic) maxDrawdownPoint() EquityPoint {
	var worst EquityPoint
	for i := range s.Equity {
		if s.Equity[i].DrawnDown.LessThan(worst.DrawnDown) {
			worst = s.Equity[i]
		}
	}
	return worst
}

// SharpeRatio relates mean excess period return to return volatility
func (s *Statistic) SharpeRatio(riskFreeRate float64) float64 {
	returns := s.periodReturns()
	if len(returns) == 0 {
		return 0
	}
	mean := meanOf(returns)
	stddev := stddevOf(returns, mean)
	if stddev == 0 {
		return 0
	}
	return (mean - riskFreeRate) / stddev
}

// SortinoRatio is the Sharpe ratio penalising downside volatility only
func (s *Statistic) SortinoRatio(riskFreeRate float64) float64 {
	returns := s.periodReturns()
	if len(returns) == 0 {
		return 0
	}
	mean := meanOf(returns)
	var negatives []float64
	for _, r := range returns {
		if r < 0 {
			negatives = append(negatives, r)
		}
	}
	downside := stddevOf(negatives, meanOf(negatives))
	if downside == 0 {
		return 0
	}
	return (mean - riskFreeRate) / downside
}

func (s *Statistic) periodReturns() []float64 {
	if len(s.Equity) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s.Equity)-1)
	for i := 1; i < len(s.Equity); i++ {
		out = append(out, s.Equity[i].EquityReturn.InexactFloat64())
	}
	return out
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)))
}

// PrintResult logs the summary of the run
func (s *Statistic) PrintResult() {
	totalReturn, err := s.TotalEquityReturn()
	if err != nil {
		log.Warnf(log.Report, "no results to report: %v", err)
		return
	}
	log.Infof(log.Report, "strategy: %s", s.StrategyName)
	log.Infof(log.Report, "transactions: %d", len(s.TransactionHistory))
	log.Infof(log.Report, "total return: %v%%", totalReturn.Round(4))
	log.Infof(log.Report, "max drawdown: %v%% at %v", s.MaxDrawdown().Round(4), s.MaxDrawdownTime())
	log.Infof(log.Report, "sharpe ratio: %.4f", s.SharpeRatio(0))
}

// Reset clears all recorded state
func (s *Statistic) Reset() {
	s.Equity = nil
	s.High = EquityPoint{}
	s.Low = EquityPoint{}
	s.TransactionHistory = nil
}

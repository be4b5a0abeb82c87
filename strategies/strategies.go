// Package strategies registers the strategies available to the engine
package strategies

import (
	"fmt"
	"strings"

	"github.com/quantave/backtester/strategies/buyandhold"
	"github.com/quantave/backtester/strategies/rsi"
)

// LoadStrategyByName returns a fresh instance of the named strategy
func LoadStrategyByName(name string) (Handler, error) {
	strats := getStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		return strats[i], nil
	}
	return nil, fmt.Errorf(errNotFound, name)
}

func getStrategies() []Handler {
	var strats []Handler
	strats = append(strats, buyandhold.New())
	strats = append(strats, rsi.New())

	return strats
}

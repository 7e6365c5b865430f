package strategy

import (
	"gitlab.com/open-soft/go-rsi-bot/src/model"
)

type RsiTradeStrategyInterface interface {
	Decide(rsi float64, balances model.Balances) model.Decision
}

type RsiTradeStrategy struct {
	Config *model.StrategyConfig
}

// Decide compares with strict thresholds, an rsi equal to a threshold holds.
func (s *RsiTradeStrategy) Decide(rsi float64, balances model.Balances) model.Decision {
	if rsi < s.Config.RsiLow && balances.QuoteAvailable.GreaterThanOrEqual(s.Config.MinQuoteTrade) {
		return model.Decision{
			StrategyName: model.RsiTradeStrategyName,
			Operation:    model.OperationBuy,
			Rsi:          rsi,
			Amount:       balances.QuoteAvailable,
		}
	}

	if rsi > s.Config.RsiHigh && balances.BaseAvailable.GreaterThanOrEqual(s.Config.MinBaseTrade) {
		return model.Decision{
			StrategyName: model.RsiTradeStrategyName,
			Operation:    model.OperationSell,
			Rsi:          rsi,
			Amount:       balances.BaseAvailable,
		}
	}

	return model.Decision{
		StrategyName: model.RsiTradeStrategyName,
		Operation:    model.OperationHold,
		Rsi:          rsi,
	}
}

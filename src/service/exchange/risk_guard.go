package exchange

import (
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
)

var hundred = decimal.NewFromInt(100)

type RiskGuardInterface interface {
	UnrealizedValue(balances model.Balances, price decimal.Decimal, priceKnown bool) decimal.Decimal
	DrawdownPercent(baseline decimal.Decimal, currentValue decimal.Decimal) decimal.Decimal
	IsWithinRiskLimit(drawdownPercent decimal.Decimal, limit decimal.Decimal) bool
	Pnl(balances model.Balances, price decimal.Decimal, priceKnown bool) (decimal.Decimal, decimal.Decimal)
	Drawdown(balances model.Balances, price decimal.Decimal, priceKnown bool) decimal.Decimal
}

// RiskGuard only reads balances, it never mutates state.
type RiskGuard struct {
}

func (r *RiskGuard) UnrealizedValue(balances model.Balances, price decimal.Decimal, priceKnown bool) decimal.Decimal {
	if !priceKnown {
		return balances.QuoteAvailable
	}

	return balances.QuoteAvailable.Add(balances.BaseAvailable.Mul(price))
}

func (r *RiskGuard) DrawdownPercent(baseline decimal.Decimal, currentValue decimal.Decimal) decimal.Decimal {
	if baseline.IsZero() {
		return decimal.Zero
	}

	return baseline.Sub(currentValue).Div(baseline).Mul(hundred)
}

func (r *RiskGuard) IsWithinRiskLimit(drawdownPercent decimal.Decimal, limit decimal.Decimal) bool {
	return drawdownPercent.LessThanOrEqual(limit)
}

func (r *RiskGuard) Pnl(balances model.Balances, price decimal.Decimal, priceKnown bool) (decimal.Decimal, decimal.Decimal) {
	if !priceKnown {
		return decimal.Zero, decimal.Zero
	}

	baseline := balances.Baseline()
	absolute := r.UnrealizedValue(balances, price, true).Sub(baseline)
	if !baseline.IsPositive() {
		return absolute, decimal.Zero
	}

	return absolute, absolute.Div(baseline).Mul(hundred)
}

// Drawdown measures the current value against the same baseline Pnl uses.
func (r *RiskGuard) Drawdown(balances model.Balances, price decimal.Decimal, priceKnown bool) decimal.Decimal {
	return r.DrawdownPercent(balances.Baseline(), r.UnrealizedValue(balances, price, priceKnown))
}

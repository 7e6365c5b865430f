package model

import "github.com/shopspring/decimal"

type Balances struct {
	QuoteAvailable          decimal.Decimal `json:"quoteAvailable"`
	BaseAvailable           decimal.Decimal `json:"baseAvailable"`
	InitialQuoteOnlyBalance decimal.Decimal `json:"initialQuoteOnlyBalance"`
	StartupValue            decimal.Decimal `json:"startupValue"`
}

// Baseline prefers the capital-preservation baseline and falls back to the startup value.
func (b Balances) Baseline() decimal.Decimal {
	if b.InitialQuoteOnlyBalance.IsPositive() {
		return b.InitialQuoteOnlyBalance
	}

	return b.StartupValue
}

package model

import "github.com/shopspring/decimal"

const RsiTradeStrategyName = "rsi_trade_strategy"

const OperationBuy = "BUY"
const OperationSell = "SELL"
const OperationHold = "HOLD"

type Decision struct {
	Operation    string          `json:"operation"`
	StrategyName string          `json:"strategyName"`
	Rsi          float64         `json:"rsi"`
	Amount       decimal.Decimal `json:"amount"`
}

func (d Decision) IsBuy() bool {
	return d.Operation == OperationBuy
}

func (d Decision) IsSell() bool {
	return d.Operation == OperationSell
}

func (d Decision) IsHold() bool {
	return d.Operation == OperationHold
}

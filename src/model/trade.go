package model

import (
	"github.com/shopspring/decimal"
	"time"
)

type Trade struct {
	Id        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
	Side      OrderSide       `json:"side"`
	Quantity  decimal.Decimal `json:"quantity"`
	OrderId   OrderId         `json:"orderId,omitempty"`
	Mode      string          `json:"mode"`
	Symbol    string          `json:"symbol"`
}

func (t Trade) IsBuy() bool {
	return t.Side.IsBuy()
}

func (t Trade) IsSell() bool {
	return t.Side.IsSell()
}

func (t Trade) IsRecovered() bool {
	return t.Mode == TradeModeRecovered
}

const TradeModePaper = "paper"
const TradeModeLive = "live"
const TradeModeRecovered = "recovered"

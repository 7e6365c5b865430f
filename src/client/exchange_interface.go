package client

import (
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
)

type ExchangePriceAPIInterface interface {
	GetTicker(symbol string) (decimal.Decimal, error)
	GetKLines(symbol string, interval string, limit int64) ([]model.KLine, error)
}

type ExchangeOrderAPIInterface interface {
	LimitOrder(symbol string, side model.OrderSide, quantity decimal.Decimal, price decimal.Decimal) (model.OrderId, error)
	CancelOrder(symbol string, orderId model.OrderId) error
	QueryOrder(symbol string, orderId model.OrderId) (model.ExchangeOrder, error)
}

type ExchangeAccountAPIInterface interface {
	GetBalances() (map[string]decimal.Decimal, error)
}

type ExchangeAPIInterface interface {
	ExchangePriceAPIInterface
	ExchangeOrderAPIInterface
	ExchangeAccountAPIInterface
}

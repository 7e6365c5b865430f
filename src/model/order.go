package model

import (
	"strings"
	"time"
)

type OrderSide string

const OrderSideBuy OrderSide = "buy"
const OrderSideSell OrderSide = "sell"

const ExchangeOrderStatusPending = "pending"
const ExchangeOrderStatusOpen = "open"
const ExchangeOrderStatusClosed = "closed"
const ExchangeOrderStatusCanceled = "canceled"
const ExchangeOrderStatusExpired = "expired"

func ParseOrderSide(value string) (OrderSide, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(OrderSideBuy):
		return OrderSideBuy, true
	case string(OrderSideSell):
		return OrderSideSell, true
	}

	return "", false
}

func (s OrderSide) IsBuy() bool {
	return s == OrderSideBuy
}

func (s OrderSide) IsSell() bool {
	return s == OrderSideSell
}

func (s OrderSide) Upper() string {
	return strings.ToUpper(string(s))
}

type OrderId string

func (o OrderId) String() string {
	return string(o)
}

type TrackedOrder struct {
	Id       OrderId   `json:"id"`
	Side     OrderSide `json:"side"`
	PlacedAt time.Time `json:"placedAt"`
}

func (o TrackedOrder) Age(now time.Time) time.Duration {
	return now.Sub(o.PlacedAt)
}

// IsStale is strict: an order exactly timeout old is kept for one more tick.
func (o TrackedOrder) IsStale(now time.Time, timeout time.Duration) bool {
	return o.Age(now) > timeout
}

type ExchangeOrder struct {
	OrderId  OrderId `json:"orderId"`
	Symbol   string  `json:"symbol"`
	Status   string  `json:"status"`
	Side     string  `json:"side"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Executed float64 `json:"executed"`
}

func (e ExchangeOrder) IsOpen() bool {
	return e.Status == ExchangeOrderStatusOpen || e.Status == ExchangeOrderStatusPending
}

func (e ExchangeOrder) IsClosed() bool {
	return e.Status == ExchangeOrderStatusClosed
}

func (e ExchangeOrder) IsCanceled() bool {
	return e.Status == ExchangeOrderStatusCanceled || e.Status == ExchangeOrderStatusExpired
}

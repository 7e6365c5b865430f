package model

import "errors"

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrNetwork = errors.New("network error")
var ErrExchangeRejected = errors.New("exchange rejected")
var ErrOrderNotFound = errors.New("order not found")

const OrderErrorInsufficientFunds = "Insufficient Funds"
const OrderErrorNetwork = "Network Error"
const OrderErrorExchange = "Exchange Error"
const OrderErrorUnexpected = "Unexpected Error"

func ClassifyOrderError(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return OrderErrorInsufficientFunds
	case errors.Is(err, ErrNetwork):
		return OrderErrorNetwork
	case errors.Is(err, ErrExchangeRejected):
		return OrderErrorExchange
	}

	return OrderErrorUnexpected
}

// ErrTradeRejected marks a signal that was dropped by a sizing or profit rule before reaching the exchange.
var ErrTradeRejected = errors.New("trade rejected")

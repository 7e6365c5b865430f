package event

import "gitlab.com/open-soft/go-rsi-bot/src/model"

const EventTradeExecuted = "event_trade_executed"
const EventTickCompleted = "event_tick_completed"

type TradeExecuted struct {
	Trade model.Trade
	Fee   string
	Quote string
}

type TickCompleted struct {
	Snapshot model.DashboardSnapshot
}

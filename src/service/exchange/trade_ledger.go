package exchange

import (
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"go.uber.org/zap"
	"io"
)

// TradeLedger is append-only. Access is serialized by TradingEngine.
type TradeLedger struct {
	Logger *zap.SugaredLogger

	trades []model.Trade
}

func NewTradeLedger(logger *zap.SugaredLogger) *TradeLedger {
	return &TradeLedger{
		Logger: logger,
		trades: make([]model.Trade, 0),
	}
}

func (l *TradeLedger) Append(trade model.Trade) {
	l.trades = append(l.trades, trade)
}

func (l *TradeLedger) Len() int {
	return len(l.trades)
}

// RecoverFromPersistedLog appends every trade found in reader and reports how many lines were skipped.
func (l *TradeLedger) RecoverFromPersistedLog(reader io.Reader) (int, int) {
	trades, skipped := ParseTradeLog(reader)
	for _, trade := range trades {
		l.Append(trade)
	}

	l.Logger.Infof("Recovered %d trades from log, %d malformed records skipped", len(trades), skipped)

	return len(trades), skipped
}

func (l *TradeLedger) LastTradeOfSide(side model.OrderSide) (model.Trade, bool) {
	for i := len(l.trades) - 1; i >= 0; i-- {
		if l.trades[i].Side == side {
			return l.trades[i], true
		}
	}

	return model.Trade{}, false
}

// LastTrades returns up to limit most recent trades, oldest first.
func (l *TradeLedger) LastTrades(limit int) []model.Trade {
	from := len(l.trades) - limit
	if from < 0 || limit < 0 {
		from = 0
	}

	trades := make([]model.Trade, len(l.trades)-from)
	copy(trades, l.trades[from:])

	return trades
}

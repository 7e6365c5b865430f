package market

import (
	"context"
	"errors"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/client"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"go.uber.org/zap"
	"time"
)

type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     2 * time.Second,
	}
}

type MarketDataServiceInterface interface {
	FetchPrice(ctx context.Context) (decimal.Decimal, bool)
	FetchCandles(limit int64) ([]model.KLine, bool)
}

type MarketDataService struct {
	Exchange    client.ExchangePriceAPIInterface
	TimeService utils.TimeServiceInterface
	Symbol      string
	Interval    string
	RetryPolicy RetryPolicy
	Logger      *zap.SugaredLogger
}

// FetchPrice never returns an error, false means the price is unavailable for this tick.
func (m *MarketDataService) FetchPrice(ctx context.Context) (decimal.Decimal, bool) {
	attempts := m.RetryPolicy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		price, err := m.Exchange.GetTicker(m.Symbol)
		if err == nil && !price.IsPositive() {
			err = errors.New("non-positive price " + price.String())
		}
		if err == nil {
			return price, true
		}

		m.Logger.Warnf("[%s] Price fetch failed (attempt %d): %s", m.Symbol, attempt, err.Error())

		if attempt < attempts {
			if m.TimeService.Sleep(ctx, m.RetryPolicy.Backoff) != nil {
				return decimal.Zero, false
			}
		}
	}

	return decimal.Zero, false
}

func (m *MarketDataService) FetchCandles(limit int64) ([]model.KLine, bool) {
	kLines, err := m.Exchange.GetKLines(m.Symbol, m.Interval, limit)
	if err != nil {
		m.Logger.Errorf("[%s] Candle fetch failed: %s", m.Symbol, err.Error())
		return nil, false
	}

	return kLines, true
}

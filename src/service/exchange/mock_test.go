package exchange_test

import (
	"context"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"time"
)

type ExchangeOrderAPIMock struct {
	mock.Mock
}

func (m *ExchangeOrderAPIMock) LimitOrder(symbol string, side model.OrderSide, quantity decimal.Decimal, price decimal.Decimal) (model.OrderId, error) {
	args := m.Called(symbol, side, quantity, price)
	return args.Get(0).(model.OrderId), args.Error(1)
}
func (m *ExchangeOrderAPIMock) CancelOrder(symbol string, orderId model.OrderId) error {
	args := m.Called(symbol, orderId)
	return args.Error(0)
}
func (m *ExchangeOrderAPIMock) QueryOrder(symbol string, orderId model.OrderId) (model.ExchangeOrder, error) {
	args := m.Called(symbol, orderId)
	return args.Get(0).(model.ExchangeOrder), args.Error(1)
}

type ExchangeAccountAPIMock struct {
	mock.Mock
}

func (m *ExchangeAccountAPIMock) GetBalances() (map[string]decimal.Decimal, error) {
	args := m.Called()
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

type TimeServiceMock struct {
	mock.Mock
}

func (t *TimeServiceMock) Sleep(ctx context.Context, duration time.Duration) error {
	args := t.Called(ctx, duration)
	return args.Error(0)
}
func (t *TimeServiceMock) Now() time.Time {
	args := t.Called()
	return args.Get(0).(time.Time)
}

func decimalMatcher(expected string) interface{} {
	return mock.MatchedBy(func(value decimal.Decimal) bool {
		return value.Equal(decimal.RequireFromString(expected))
	})
}

func testStrategyConfig(mode string) *model.StrategyConfig {
	return &model.StrategyConfig{
		Mode:               mode,
		BaseAsset:          "DOGE",
		QuoteAsset:         "USDT",
		RsiPeriod:          3,
		RsiLow:             25,
		RsiHigh:            85,
		KLineInterval:      "5m",
		KLineLimit:         100,
		MakerFee:           decimal.RequireFromString("0.0016"),
		TakerFee:           decimal.RequireFromString("0.0026"),
		PriceAdjustment:    decimal.RequireFromString("0.004"),
		MinQuoteTrade:      decimal.NewFromInt(5),
		MinBaseTrade:       decimal.NewFromInt(15),
		PositionPercent:    decimal.NewFromInt(97),
		MaxDrawdownPercent: decimal.NewFromInt(90),
		OrderTimeout:       30 * time.Minute,
		TickInterval:       time.Minute,
		SeriesLimit:        100,
	}
}

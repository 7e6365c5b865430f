package market_test

import (
	"context"
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/service/market"
	"go.uber.org/zap"
	"testing"
	"time"
)

type ExchangePriceAPIMock struct {
	mock.Mock
}

func (m *ExchangePriceAPIMock) GetTicker(symbol string) (decimal.Decimal, error) {
	args := m.Called(symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *ExchangePriceAPIMock) GetKLines(symbol string, interval string, limit int64) ([]model.KLine, error) {
	args := m.Called(symbol, interval, limit)
	return args.Get(0).([]model.KLine), args.Error(1)
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

func newMarketDataService(exchange *ExchangePriceAPIMock, timeService *TimeServiceMock) *market.MarketDataService {
	return &market.MarketDataService{
		Exchange:    exchange,
		TimeService: timeService,
		Symbol:      "DOGEUSDT",
		Interval:    "5m",
		RetryPolicy: market.DefaultRetryPolicy(),
		Logger:      zap.NewNop().Sugar(),
	}
}

func TestFetchPriceGivesUpAfterThreeAttempts(t *testing.T) {
	assertion := assert.New(t)

	exchange := new(ExchangePriceAPIMock)
	timeService := new(TimeServiceMock)
	exchange.On("GetTicker", "DOGEUSDT").Return(decimal.Zero, fmt.Errorf("%w: timeout", model.ErrNetwork))
	timeService.On("Sleep", mock.Anything, 2*time.Second).Return(nil)

	price, ok := newMarketDataService(exchange, timeService).FetchPrice(context.Background())

	assertion.False(ok)
	assertion.True(price.IsZero())
	exchange.AssertNumberOfCalls(t, "GetTicker", 3)
	timeService.AssertNumberOfCalls(t, "Sleep", 2)
}

func TestFetchPriceRecoversOnRetry(t *testing.T) {
	assertion := assert.New(t)

	exchange := new(ExchangePriceAPIMock)
	timeService := new(TimeServiceMock)
	exchange.On("GetTicker", "DOGEUSDT").Return(decimal.Zero, errors.New("EService:Unavailable")).Once()
	exchange.On("GetTicker", "DOGEUSDT").Return(decimal.RequireFromString("0.1405"), nil).Once()
	timeService.On("Sleep", mock.Anything, 2*time.Second).Return(nil)

	price, ok := newMarketDataService(exchange, timeService).FetchPrice(context.Background())

	assertion.True(ok)
	assertion.Equal("0.1405", price.String())
	exchange.AssertNumberOfCalls(t, "GetTicker", 2)
	timeService.AssertNumberOfCalls(t, "Sleep", 1)
}

func TestFetchPriceTreatsNonPositivePriceAsFailure(t *testing.T) {
	assertion := assert.New(t)

	exchange := new(ExchangePriceAPIMock)
	timeService := new(TimeServiceMock)
	exchange.On("GetTicker", "DOGEUSDT").Return(decimal.Zero, nil)
	timeService.On("Sleep", mock.Anything, 2*time.Second).Return(nil)

	_, ok := newMarketDataService(exchange, timeService).FetchPrice(context.Background())

	assertion.False(ok)
	exchange.AssertNumberOfCalls(t, "GetTicker", 3)
}

func TestFetchPriceStopsWhenContextIsDone(t *testing.T) {
	assertion := assert.New(t)

	exchange := new(ExchangePriceAPIMock)
	timeService := new(TimeServiceMock)
	exchange.On("GetTicker", "DOGEUSDT").Return(decimal.Zero, fmt.Errorf("%w: timeout", model.ErrNetwork))
	timeService.On("Sleep", mock.Anything, 2*time.Second).Return(context.Canceled)

	_, ok := newMarketDataService(exchange, timeService).FetchPrice(context.Background())

	assertion.False(ok)
	exchange.AssertNumberOfCalls(t, "GetTicker", 1)
}

func TestFetchCandles(t *testing.T) {
	assertion := assert.New(t)

	exchange := new(ExchangePriceAPIMock)
	exchange.On("GetKLines", "DOGEUSDT", "5m", int64(100)).Return([]model.KLine{{Close: 0.14}, {Close: 0.15}}, nil).Once()
	exchange.On("GetKLines", "DOGEUSDT", "5m", int64(100)).Return([]model.KLine{}, errors.New("EGeneral:Invalid arguments")).Once()

	service := newMarketDataService(exchange, new(TimeServiceMock))

	kLines, ok := service.FetchCandles(100)
	assertion.True(ok)
	assertion.Len(kLines, 2)

	kLines, ok = service.FetchCandles(100)
	assertion.False(ok)
	assertion.Nil(kLines)
}

package model_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"testing"
	"time"
)

func validStrategyConfig() model.StrategyConfig {
	return model.StrategyConfig{
		Mode:               model.TradeModePaper,
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

func TestSeriesBufferKeepsLastSamples(t *testing.T) {
	assertion := assert.New(t)

	buffer := model.NewSeriesBuffer(3)
	_, ok := buffer.Last()
	assertion.False(ok)

	for i := 1; i <= 5; i++ {
		buffer.Append(model.SeriesPoint{Price: float64(i), Rsi: float64(i * 10)})
	}

	assertion.Equal(3, buffer.Len())
	points := buffer.Points()
	assertion.Equal(3.0, points[0].Price)
	assertion.Equal(5.0, points[2].Price)

	last, ok := buffer.Last()
	assertion.True(ok)
	assertion.Equal(50.0, last.Rsi)

	points[0].Price = 999
	assertion.Equal(3.0, buffer.Points()[0].Price)
}

func TestStrategyConfigSymbols(t *testing.T) {
	assertion := assert.New(t)
	config := validStrategyConfig()

	assertion.Equal("DOGEUSDT", config.GetSymbol())
	assertion.Equal("DOGE/USDT", config.GetDisplaySymbol())
	assertion.True(config.IsPaper())
	assertion.False(config.IsLive())
	assertion.Equal("0.97", config.PositionRatio().String())
	assertion.Equal("1.0052", config.ProfitBufferRatio().String())
	assertion.Nil(config.Validate())
}

func TestStrategyConfigValidate(t *testing.T) {
	assertion := assert.New(t)

	cases := map[string]func(c *model.StrategyConfig){
		"mode":           func(c *model.StrategyConfig) { c.Mode = "demo" },
		"thresholds":     func(c *model.StrategyConfig) { c.RsiLow = 90 },
		"period":         func(c *model.StrategyConfig) { c.RsiPeriod = 0 },
		"kline limit":    func(c *model.StrategyConfig) { c.KLineLimit = 3 },
		"position":       func(c *model.StrategyConfig) { c.PositionPercent = decimal.NewFromInt(101) },
		"negative fee":   func(c *model.StrategyConfig) { c.TakerFee = decimal.RequireFromString("-0.1") },
		"order timeout":  func(c *model.StrategyConfig) { c.OrderTimeout = 0 },
		"series limit":   func(c *model.StrategyConfig) { c.SeriesLimit = 0 },
		"missing assets": func(c *model.StrategyConfig) { c.BaseAsset = "" },
	}

	for name, mutate := range cases {
		config := validStrategyConfig()
		mutate(&config)
		assertion.NotNil(config.Validate(), name)
	}
}

func TestBalancesBaseline(t *testing.T) {
	assertion := assert.New(t)

	balances := model.Balances{StartupValue: decimal.NewFromInt(120)}
	assertion.Equal("120", balances.Baseline().String())

	balances.InitialQuoteOnlyBalance = decimal.NewFromInt(100)
	assertion.Equal("100", balances.Baseline().String())
}

func TestClassifyOrderError(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal(model.OrderErrorInsufficientFunds, model.ClassifyOrderError(fmt.Errorf("%w: EOrder:Insufficient funds", model.ErrInsufficientFunds)))
	assertion.Equal(model.OrderErrorNetwork, model.ClassifyOrderError(fmt.Errorf("%w: timeout", model.ErrNetwork)))
	assertion.Equal(model.OrderErrorExchange, model.ClassifyOrderError(fmt.Errorf("%w: EGeneral:Invalid arguments", model.ErrExchangeRejected)))
	assertion.Equal(model.OrderErrorUnexpected, model.ClassifyOrderError(errors.New("boom")))
}

func TestTrackedOrderIsStaleIsStrict(t *testing.T) {
	assertion := assert.New(t)

	placedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	order := model.TrackedOrder{Id: "OQCLML-BW3P3-BUCMWZ", Side: model.OrderSideBuy, PlacedAt: placedAt}

	assertion.False(order.IsStale(placedAt.Add(30*time.Minute), 30*time.Minute))
	assertion.True(order.IsStale(placedAt.Add(30*time.Minute+time.Second), 30*time.Minute))
}

func TestOrderTimeoutFromMinutes(t *testing.T) {
	assertion := assert.New(t)

	timeout, err := model.OrderTimeoutFromMinutes(30)
	assertion.Nil(err)
	assertion.Equal(30*time.Minute, timeout)

	timeout, err = model.OrderTimeoutFromMinutes(model.MaxOrderTimeoutMinutes)
	assertion.Nil(err)
	assertion.True(timeout > 0)

	_, err = model.OrderTimeoutFromMinutes(model.MaxOrderTimeoutMinutes + 1)
	assertion.EqualError(err, "order timeout must not exceed 153722867 minutes, 153722868 given")

	_, err = model.OrderTimeoutFromMinutes(0)
	assertion.EqualError(err, "order timeout must be positive, 0 given")
}

func TestParseOrderSide(t *testing.T) {
	assertion := assert.New(t)

	side, ok := model.ParseOrderSide(" BUY ")
	assertion.True(ok)
	assertion.Equal(model.OrderSideBuy, side)
	assertion.Equal("BUY", side.Upper())

	side, ok = model.ParseOrderSide("sell")
	assertion.True(ok)
	assertion.True(side.IsSell())

	_, ok = model.ParseOrderSide("hold")
	assertion.False(ok)
}

func TestKrakenOHLCRowToKLine(t *testing.T) {
	assertion := assert.New(t)

	var rows []model.KrakenOHLCRow
	err := json.Unmarshal([]byte(`[[1709287200,"0.14020","0.14100","0.13950","0.14050","0.14030","150234.5",42]]`), &rows)
	assertion.Nil(err)

	kLine, err := rows[0].ToKLine("DOGEUSDT", "5m")
	assertion.Nil(err)
	assertion.Equal("DOGEUSDT", kLine.Symbol)
	assertion.Equal(int64(1709287200000), kLine.OpenTime.Value())
	assertion.Equal(0.1405, kLine.GetClose())
	assertion.Equal(150234.5, kLine.Volume.Value())

	_, err = model.KrakenOHLCRow{}.ToKLine("DOGEUSDT", "5m")
	assertion.NotNil(err)
}

func TestPriceUnmarshal(t *testing.T) {
	assertion := assert.New(t)

	var price model.Price
	assertion.Nil(json.Unmarshal([]byte(`"0.125"`), &price))
	assertion.Equal(0.125, price.Value())
	assertion.Nil(json.Unmarshal([]byte(`2.5`), &price))
	assertion.Equal(2.5, price.Value())
	assertion.NotNil(json.Unmarshal([]byte(`"abc"`), &price))
	assertion.NotNil(json.Unmarshal([]byte(`true`), &price))
}

func TestKrakenOrderInfoToExchangeOrder(t *testing.T) {
	assertion := assert.New(t)

	info := model.KrakenOrderInfo{
		Status:         model.ExchangeOrderStatusClosed,
		Description:    model.KrakenOrderDescription{Type: "buy", Price: "0.14000"},
		Volume:         "100.00000000",
		VolumeExecuted: "100.00000000",
	}

	order := info.ToExchangeOrder("OXYZ", "DOGEUSDT")
	assertion.True(order.IsClosed())
	assertion.False(order.IsOpen())
	assertion.Equal(0.14, order.Price)
	assertion.Equal(100.0, order.Executed)
}

func TestKLineCloses(t *testing.T) {
	closes := model.Closes([]model.KLine{{Close: 1}, {Close: 2}, {Close: 3}})

	assert.Equal(t, []float64{1, 2, 3}, closes)
}

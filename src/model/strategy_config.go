package model

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"math"
	"time"
)

var hundred = decimal.NewFromInt(100)

// MaxOrderTimeoutMinutes is the largest timeout that still fits time.Duration.
const MaxOrderTimeoutMinutes = int64(math.MaxInt64 / int64(time.Minute))

func OrderTimeoutFromMinutes(minutes int64) (time.Duration, error) {
	if minutes <= 0 {
		return 0, errors.New(fmt.Sprintf("order timeout must be positive, %d given", minutes))
	}
	if minutes > MaxOrderTimeoutMinutes {
		return 0, errors.New(fmt.Sprintf("order timeout must not exceed %d minutes, %d given", MaxOrderTimeoutMinutes, minutes))
	}

	return time.Duration(minutes) * time.Minute, nil
}

type StrategyConfig struct {
	Mode               string          `json:"mode"`
	BaseAsset          string          `json:"baseAsset"`
	QuoteAsset         string          `json:"quoteAsset"`
	RsiPeriod          int             `json:"rsiPeriod"`
	RsiLow             float64         `json:"rsiLow"`
	RsiHigh            float64         `json:"rsiHigh"`
	KLineInterval      string          `json:"kLineInterval"`
	KLineLimit         int64           `json:"kLineLimit"`
	MakerFee           decimal.Decimal `json:"makerFee"`
	TakerFee           decimal.Decimal `json:"takerFee"`
	PriceAdjustment    decimal.Decimal `json:"priceAdjustment"`
	MinQuoteTrade      decimal.Decimal `json:"minQuoteTrade"`
	MinBaseTrade       decimal.Decimal `json:"minBaseTrade"`
	PositionPercent    decimal.Decimal `json:"positionPercent"`
	MaxDrawdownPercent decimal.Decimal `json:"maxDrawdownPercent"`
	RiskAutoDisable    bool            `json:"riskAutoDisable"`
	OrderTimeout       time.Duration   `json:"orderTimeout"`
	TickInterval       time.Duration   `json:"tickInterval"`
	SeriesLimit        int             `json:"seriesLimit"`
}

func (c StrategyConfig) IsPaper() bool {
	return c.Mode == TradeModePaper
}

func (c StrategyConfig) IsLive() bool {
	return c.Mode == TradeModeLive
}

func (c StrategyConfig) GetSymbol() string {
	return fmt.Sprintf("%s%s", c.BaseAsset, c.QuoteAsset)
}

func (c StrategyConfig) GetDisplaySymbol() string {
	return fmt.Sprintf("%s/%s", c.BaseAsset, c.QuoteAsset)
}

// PositionRatio converts the position-use percentage into a multiplier.
func (c StrategyConfig) PositionRatio() decimal.Decimal {
	return c.PositionPercent.Div(hundred)
}

// ProfitBufferRatio is the round-trip taker fee multiplier a sell must clear.
func (c StrategyConfig) ProfitBufferRatio() decimal.Decimal {
	return decimal.NewFromInt(1).Add(c.TakerFee.Mul(decimal.NewFromInt(2)))
}

func (c StrategyConfig) Validate() error {
	if c.Mode != TradeModePaper && c.Mode != TradeModeLive {
		return errors.New(fmt.Sprintf("unknown trading mode %q", c.Mode))
	}
	if c.BaseAsset == "" || c.QuoteAsset == "" {
		return errors.New("base and quote assets must be set")
	}
	if c.RsiPeriod < 1 {
		return errors.New(fmt.Sprintf("rsi period must be positive, %d given", c.RsiPeriod))
	}
	if c.RsiLow < 0 || c.RsiHigh > 100 {
		return errors.New(fmt.Sprintf("rsi thresholds must be within [0,100], %.2f/%.2f given", c.RsiLow, c.RsiHigh))
	}
	if c.RsiLow >= c.RsiHigh {
		return errors.New(fmt.Sprintf("rsi low threshold %.2f must be below high threshold %.2f", c.RsiLow, c.RsiHigh))
	}
	if c.KLineLimit < int64(c.RsiPeriod+1) {
		return errors.New(fmt.Sprintf("kline limit %d is too small for rsi period %d", c.KLineLimit, c.RsiPeriod))
	}

	for name, percent := range map[string]decimal.Decimal{
		"position percent":     c.PositionPercent,
		"max drawdown percent": c.MaxDrawdownPercent,
	} {
		if percent.IsNegative() || percent.GreaterThan(hundred) {
			return errors.New(fmt.Sprintf("%s must be within [0,100], %s given", name, percent.String()))
		}
	}

	for name, value := range map[string]decimal.Decimal{
		"maker fee":        c.MakerFee,
		"taker fee":        c.TakerFee,
		"price adjustment": c.PriceAdjustment,
		"min quote trade":  c.MinQuoteTrade,
		"min base trade":   c.MinBaseTrade,
	} {
		if value.IsNegative() {
			return errors.New(fmt.Sprintf("%s must not be negative, %s given", name, value.String()))
		}
	}

	if c.OrderTimeout <= 0 {
		return errors.New("order timeout must be positive")
	}
	if c.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}
	if c.SeriesLimit < 1 {
		return errors.New("series limit must be positive")
	}

	return nil
}

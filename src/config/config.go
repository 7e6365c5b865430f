package config

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BotUuid               string
	Strategy              model.StrategyConfig
	KrakenDSN             string
	KrakenApiKey          string
	KrakenApiSecret       string
	KrakenPricePrecision  int32
	KrakenVolumePrecision int32
	PriceRetryAttempts    int
	PriceRetryBackoff     time.Duration
	PaperQuoteBalance     decimal.Decimal
	PaperBaseBalance      decimal.Decimal
	TradeLogPath          string
	HttpAddr              string
	DatabaseDSN           string
	RedisDSN              string
	RedisPassword         string
	TelegramBotToken      string
	TelegramChatId        int64
}

// envReader collects the first parse error so LoadConfig can report it once.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) getString(name string, fallback string) string {
	value, ok := r.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}

	return strings.TrimSpace(value)
}

func (r *envReader) getInt(name string, fallback int64) int64 {
	raw := r.getString(name, "")
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil && r.err == nil {
		r.err = errors.New(fmt.Sprintf("%s must be an integer, %q given", name, raw))
	}

	return value
}

func (r *envReader) getFloat(name string, fallback float64) float64 {
	raw := r.getString(name, "")
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil && r.err == nil {
		r.err = errors.New(fmt.Sprintf("%s must be a number, %q given", name, raw))
	}

	return value
}

func (r *envReader) getDecimal(name string, fallback string) decimal.Decimal {
	raw := r.getString(name, fallback)

	value, err := decimal.NewFromString(raw)
	if err != nil && r.err == nil {
		r.err = errors.New(fmt.Sprintf("%s must be a decimal, %q given", name, raw))
	}

	return value
}

func (r *envReader) getBool(name string, fallback bool) bool {
	raw := r.getString(name, "")
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseBool(raw)
	if err != nil && r.err == nil {
		r.err = errors.New(fmt.Sprintf("%s must be a boolean, %q given", name, raw))
	}

	return value
}

func LoadConfig() (Config, error) {
	return LoadConfigFrom(os.LookupEnv)
}

func LoadConfigFrom(lookup func(string) (string, bool)) (Config, error) {
	env := &envReader{lookup: lookup}
	orderTimeout, orderTimeoutErr := model.OrderTimeoutFromMinutes(env.getInt("ORDER_TIMEOUT_MINUTES", 30))

	config := Config{
		BotUuid: env.getString("BOT_UUID", "rsi-bot"),
		Strategy: model.StrategyConfig{
			Mode:               strings.ToLower(env.getString("TRADING_MODE", model.TradeModePaper)),
			BaseAsset:          strings.ToUpper(env.getString("BASE_ASSET", "DOGE")),
			QuoteAsset:         strings.ToUpper(env.getString("QUOTE_ASSET", "USDT")),
			RsiPeriod:          int(env.getInt("RSI_PERIOD", 3)),
			RsiLow:             env.getFloat("RSI_LOW", 25),
			RsiHigh:            env.getFloat("RSI_HIGH", 85),
			KLineInterval:      env.getString("KLINE_INTERVAL", "5m"),
			KLineLimit:         env.getInt("KLINE_LIMIT", 100),
			MakerFee:           env.getDecimal("MAKER_FEE", "0.0016"),
			TakerFee:           env.getDecimal("TAKER_FEE", "0.0026"),
			PriceAdjustment:    env.getDecimal("PRICE_ADJUSTMENT", "0.004"),
			MinQuoteTrade:      env.getDecimal("MIN_QUOTE_TRADE", "5"),
			MinBaseTrade:       env.getDecimal("MIN_BASE_TRADE", "15"),
			PositionPercent:    env.getDecimal("POSITION_PERCENT", "97"),
			MaxDrawdownPercent: env.getDecimal("MAX_DRAWDOWN_PERCENT", "90"),
			RiskAutoDisable:    env.getBool("RISK_AUTO_DISABLE", false),
			OrderTimeout:       orderTimeout,
			TickInterval:       time.Duration(env.getInt("TICK_INTERVAL_SECONDS", 60)) * time.Second,
			SeriesLimit:        int(env.getInt("SERIES_LIMIT", 100)),
		},
		KrakenDSN:             env.getString("KRAKEN_DSN", "https://api.kraken.com"),
		KrakenApiKey:          env.getString("KRAKEN_API_KEY", ""),
		KrakenApiSecret:       env.getString("KRAKEN_API_SECRET", ""),
		KrakenPricePrecision:  int32(env.getInt("KRAKEN_PRICE_PRECISION", 5)),
		KrakenVolumePrecision: int32(env.getInt("KRAKEN_VOLUME_PRECISION", 8)),
		PriceRetryAttempts:    int(env.getInt("PRICE_RETRY_ATTEMPTS", 3)),
		PriceRetryBackoff:     time.Duration(env.getInt("PRICE_RETRY_BACKOFF_SECONDS", 2)) * time.Second,
		PaperQuoteBalance:     env.getDecimal("PAPER_QUOTE_BALANCE", "50"),
		PaperBaseBalance:      env.getDecimal("PAPER_BASE_BALANCE", "61.18663155"),
		TradeLogPath:          env.getString("TRADE_LOG_PATH", "rsi_trading-kraken.log"),
		HttpAddr:              env.getString("HTTP_ADDR", ":8080"),
		DatabaseDSN:           env.getString("DATABASE_DSN", ""),
		RedisDSN:              env.getString("REDIS_DSN", ""),
		RedisPassword:         env.getString("REDIS_PASSWORD", ""),
		TelegramBotToken:      env.getString("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatId:        env.getInt("TELEGRAM_CHAT_ID", 0),
	}

	if env.err != nil {
		return config, env.err
	}
	if orderTimeoutErr != nil {
		return config, fmt.Errorf("ORDER_TIMEOUT_MINUTES: %w", orderTimeoutErr)
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	if err := c.Strategy.Validate(); err != nil {
		return err
	}

	if c.Strategy.IsLive() && (c.KrakenApiKey == "" || c.KrakenApiSecret == "") {
		return errors.New("KRAKEN_API_KEY and KRAKEN_API_SECRET are required in live mode")
	}

	if c.PriceRetryAttempts < 1 {
		return errors.New("PRICE_RETRY_ATTEMPTS must be positive")
	}

	if c.PaperQuoteBalance.IsNegative() || c.PaperBaseBalance.IsNegative() {
		return errors.New("paper balances must not be negative")
	}

	if c.TelegramBotToken != "" && c.TelegramChatId == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	return nil
}

func (c Config) IsDatabaseEnabled() bool {
	return c.DatabaseDSN != ""
}

func (c Config) IsRedisEnabled() bool {
	return c.RedisDSN != ""
}

func (c Config) IsTelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

package service

import (
	"context"
	"errors"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/event"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/service/exchange"
	"gitlab.com/open-soft/go-rsi-bot/src/service/indicator"
	"gitlab.com/open-soft/go-rsi-bot/src/service/market"
	"gitlab.com/open-soft/go-rsi-bot/src/service/strategy"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"go.uber.org/zap"
	"sync"
	"time"
)

const DashboardTradesLimit = 10

// TradingEngine owns all mutable trading state behind one lock shared with the control surface.
type TradingEngine struct {
	Config            *model.StrategyConfig
	MarketDataService market.MarketDataServiceInterface
	RsiCalculator     indicator.RsiCalculatorInterface
	Strategy          strategy.RsiTradeStrategyInterface
	BalanceService    exchange.BalanceServiceInterface
	OrderLedger       *exchange.OrderLedger
	TradeLedger       *exchange.TradeLedger
	RiskGuard         exchange.RiskGuardInterface
	OrderExecutor     exchange.OrderExecutorInterface
	EventDispatcher   EventDispatcherInterface
	TimeService       utils.TimeServiceInterface
	Formatter         *utils.Formatter
	Logger            *zap.SugaredLogger

	mutex          sync.RWMutex
	tradingEnabled bool
	series         *model.SeriesBuffer
	lastPrice      decimal.Decimal
	priceKnown     bool
	lastRsi        float64
	updatedAt      time.Time
}

// Init captures the startup balances and baseline. Trading starts enabled.
func (e *TradingEngine) Init(ctx context.Context) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.series = model.NewSeriesBuffer(e.Config.SeriesLimit)
	e.tradingEnabled = true

	_ = e.BalanceService.Refresh()

	price, ok := e.MarketDataService.FetchPrice(ctx)
	if ok {
		e.lastPrice = price
		e.priceKnown = true
	}
	e.BalanceService.CaptureStartup(price, ok)
}

// Run ticks until ctx is cancelled. A tick never overlaps the next one.
func (e *TradingEngine) Run(ctx context.Context) {
	e.Logger.Infof(
		"[%s] Trading loop started in %s mode, interval %s",
		e.Config.GetDisplaySymbol(),
		e.Config.Mode,
		e.Config.TickInterval,
	)

	for {
		e.Tick(ctx)

		if err := e.TimeService.Sleep(ctx, e.Config.TickInterval); err != nil {
			e.Logger.Infof("[%s] Trading loop stopped: %s", e.Config.GetDisplaySymbol(), err.Error())
			return
		}
	}
}

// Tick runs one decision cycle and returns the trades it executed.
func (e *TradingEngine) Tick(ctx context.Context) (results []exchange.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.Errorf("[%s] Trade cycle error: %v", e.Config.GetDisplaySymbol(), r)
		}
	}()

	refreshErr := e.refreshState()

	price, priceOk := e.MarketDataService.FetchPrice(ctx)
	rsi, rsiOk := e.fetchRsi(priceOk)

	results, snapshot := e.evaluate(price, priceOk, rsi, rsiOk, refreshErr)

	for _, result := range results {
		e.EventDispatcher.Dispatch(event.TradeExecuted{
			Trade: result.Trade,
			Fee:   e.Formatter.FormatFee(result.Fee),
			Quote: e.Formatter.FormatQuote(result.Quote),
		}, event.EventTradeExecuted)
	}
	e.EventDispatcher.Dispatch(event.TickCompleted{Snapshot: snapshot}, event.EventTickCompleted)

	return results
}

// refreshState returns the balance refresh error, order expiry still runs on failure.
func (e *TradingEngine) refreshState() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	err := e.BalanceService.Refresh()

	if e.Config.IsLive() {
		e.BalanceService.ReconcileFilledOrders(e.OrderLedger)
		e.OrderLedger.ExpireStale(e.TimeService.Now(), e.Config.OrderTimeout)
	}

	return err
}

func (e *TradingEngine) fetchRsi(priceOk bool) (float64, bool) {
	if !priceOk {
		return 0, false
	}

	kLines, ok := e.MarketDataService.FetchCandles(e.Config.KLineLimit)
	if !ok {
		return 0, false
	}

	rsi, ok := e.RsiCalculator.CalculateRsi(kLines, e.Config.RsiPeriod)
	if !ok {
		e.Logger.Warnf(
			"[%s] Not enough candles for RSI: %d, %d required",
			e.Config.GetDisplaySymbol(),
			len(kLines),
			e.Config.RsiPeriod+1,
		)
	}

	return rsi, ok
}

func (e *TradingEngine) evaluate(
	price decimal.Decimal,
	priceOk bool,
	rsi float64,
	rsiOk bool,
	refreshErr error,
) ([]exchange.ExecutionResult, model.DashboardSnapshot) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	results := make([]exchange.ExecutionResult, 0)
	symbol := e.Config.GetDisplaySymbol()

	if !priceOk || !rsiOk {
		e.Logger.Warnf("[%s] Price or RSI is unavailable, skipping signal evaluation", symbol)
		return results, e.snapshotLocked()
	}

	now := e.TimeService.Now()
	e.lastPrice = price
	e.priceKnown = true
	e.lastRsi = rsi
	e.updatedAt = now
	e.series.Append(model.SeriesPoint{
		Price:     price.InexactFloat64(),
		Rsi:       rsi,
		Timestamp: now,
	})

	balances := e.BalanceService.GetBalances()
	e.Logger.Infof(
		"[%s] Price: %s, RSI: %.2f, %s: %s, %s: %s",
		symbol,
		e.Formatter.FormatPrice(price),
		rsi,
		e.Config.QuoteAsset,
		e.Formatter.FormatQuote(balances.QuoteAvailable),
		e.Config.BaseAsset,
		e.Formatter.FormatBase(balances.BaseAvailable),
	)

	// live orders are sized from exchange balances, a failed refresh leaves them stale
	if refreshErr != nil && e.Config.IsLive() {
		e.Logger.Warnf("[%s] Balances are stale (%s), skipping signal evaluation", symbol, refreshErr.Error())
		return results, e.snapshotLocked()
	}

	e.checkRiskLimit(balances, price)

	if !e.tradingEnabled {
		e.Logger.Infof("[%s] Trading is disabled. Skipping trade.", symbol)
		return results, e.snapshotLocked()
	}

	decision := e.Strategy.Decide(rsi, balances)

	var result exchange.ExecutionResult
	var err error
	switch decision.Operation {
	case model.OperationBuy:
		e.Logger.Infof("[%s] BUY SIGNAL (RSI %.2f < %.2f)", symbol, rsi, e.Config.RsiLow)
		result, err = e.OrderExecutor.Buy(decision.Amount, price)
	case model.OperationSell:
		e.Logger.Infof("[%s] SELL SIGNAL (RSI %.2f > %.2f)", symbol, rsi, e.Config.RsiHigh)
		result, err = e.OrderExecutor.Sell(decision.Amount, price)
	default:
		return results, e.snapshotLocked()
	}

	if err != nil {
		if errors.Is(err, model.ErrTradeRejected) {
			e.Logger.Infof("[%s] Skipping trade: %s", symbol, err.Error())
		} else {
			e.Logger.Errorf("[%s] %s", symbol, err.Error())
		}

		return results, e.snapshotLocked()
	}

	results = append(results, result)

	return results, e.snapshotLocked()
}

func (e *TradingEngine) checkRiskLimit(balances model.Balances, price decimal.Decimal) {
	drawdown := e.RiskGuard.Drawdown(balances, price, true)
	if e.RiskGuard.IsWithinRiskLimit(drawdown, e.Config.MaxDrawdownPercent) {
		return
	}

	e.Logger.Warnf(
		"[%s] Loss threshold exceeded: %s%% > %s%%",
		e.Config.GetDisplaySymbol(),
		drawdown.StringFixed(2),
		e.Config.MaxDrawdownPercent.StringFixed(2),
	)

	if e.Config.RiskAutoDisable && e.tradingEnabled {
		e.tradingEnabled = false
		e.Logger.Warnf("[%s] Trading disabled by capital preservation limit", e.Config.GetDisplaySymbol())
	}
}

func (e *TradingEngine) SetTradingEnabled(enabled bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.tradingEnabled = enabled
	e.Logger.Infof("[%s] Trading enabled: %t", e.Config.GetDisplaySymbol(), enabled)
}

func (e *TradingEngine) IsTradingEnabled() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.tradingEnabled
}

func (e *TradingEngine) SetOrderTimeout(minutes int64) error {
	timeout, err := model.OrderTimeoutFromMinutes(minutes)
	if err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.Config.OrderTimeout = timeout
	e.Logger.Infof("[%s] Order timeout set to %d minutes", e.Config.GetDisplaySymbol(), minutes)

	return nil
}

func (e *TradingEngine) GetOrderTimeout() time.Duration {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.Config.OrderTimeout
}

// ResetBaseline re-reads live balances first, paper balances are already current.
func (e *TradingEngine) ResetBaseline() decimal.Decimal {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.Config.IsLive() {
		_ = e.BalanceService.Refresh()
	}

	return e.BalanceService.ResetBaseline(e.lastPrice, e.priceKnown)
}

func (e *TradingEngine) GetBalances() model.Balances {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.BalanceService.GetBalances()
}

func (e *TradingEngine) GetTrades() []model.Trade {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.TradeLedger.LastTrades(e.TradeLedger.Len())
}

func (e *TradingEngine) GetPnl() (decimal.Decimal, decimal.Decimal) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.RiskGuard.Pnl(e.BalanceService.GetBalances(), e.lastPrice, e.priceKnown)
}

func (e *TradingEngine) Snapshot() model.DashboardSnapshot {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.snapshotLocked()
}

func (e *TradingEngine) snapshotLocked() model.DashboardSnapshot {
	balances := e.BalanceService.GetBalances()
	pnlAbsolute, pnlPercent := e.RiskGuard.Pnl(balances, e.lastPrice, e.priceKnown)
	drawdown := e.RiskGuard.Drawdown(balances, e.lastPrice, e.priceKnown)

	trades := e.TradeLedger.LastTrades(DashboardTradesLimit)
	tradeViews := make([]model.TradeView, 0, len(trades))
	for i := len(trades) - 1; i >= 0; i-- {
		trade := trades[i]
		class := "negative"
		if trade.IsBuy() {
			class = "positive"
		}
		tradeViews = append(tradeViews, model.TradeView{
			Time:  trade.Timestamp.Format(utils.DateTimeLayout),
			Type:  trade.Side.Upper(),
			Price: e.Formatter.FormatPrice(trade.Price),
			Class: class,
		})
	}

	prices := make([]float64, 0)
	rsis := make([]float64, 0)
	timestamps := make([]string, 0)
	if e.series != nil {
		points := e.series.Points()
		for i := len(points) - 1; i >= 0; i-- {
			prices = append(prices, points[i].Price)
			rsis = append(rsis, points[i].Rsi)
			timestamps = append(timestamps, points[i].Timestamp.Format(utils.DateTimeLayout))
		}
	}

	updatedAt := ""
	if !e.updatedAt.IsZero() {
		updatedAt = e.updatedAt.Format(utils.DateTimeLayout)
	}

	return model.DashboardSnapshot{
		Symbol:          e.Config.GetDisplaySymbol(),
		Mode:            e.Config.Mode,
		QuoteAsset:      e.Config.QuoteAsset,
		BaseAsset:       e.Config.BaseAsset,
		QuoteBalance:    e.Formatter.FormatQuote(balances.QuoteAvailable),
		BaseBalance:     e.Formatter.FormatBase(balances.BaseAvailable),
		Baseline:        e.Formatter.FormatQuote(balances.Baseline()),
		CurrentPrice:    e.lastPrice.InexactFloat64(),
		CurrentRsi:      e.lastRsi,
		PnlAbsolute:     e.Formatter.FormatQuote(pnlAbsolute),
		PnlPercent:      pnlPercent.StringFixed(2),
		DrawdownPercent: drawdown.StringFixed(2),
		WithinRiskLimit: e.RiskGuard.IsWithinRiskLimit(drawdown, e.Config.MaxDrawdownPercent),
		TotalFees:       e.Formatter.FormatFee(e.OrderExecutor.GetTotalFees()),
		TradingEnabled:  e.tradingEnabled,
		OrderTimeout:    int64(e.Config.OrderTimeout / time.Minute),
		OpenOrders:      e.OrderLedger.Count(),
		Trades:          tradeViews,
		Prices:          prices,
		Rsis:            rsis,
		Timestamps:      timestamps,
		UpdatedAt:       updatedAt,
	}
}

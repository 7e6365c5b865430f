package exchange

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/client"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"go.uber.org/zap"
)

type BalanceServiceInterface interface {
	Refresh() error
	ReconcileFilledOrders(ledger *OrderLedger)
	ResetBaseline(price decimal.Decimal, priceKnown bool) decimal.Decimal
	CaptureStartup(price decimal.Decimal, priceKnown bool)
	GetBalances() model.Balances
}

// BalanceService is not safe for concurrent use, TradingEngine serializes access.
type BalanceService struct {
	Config    *model.StrategyConfig
	Account   client.ExchangeAccountAPIInterface
	OrderAPI  client.ExchangeOrderAPIInterface
	Formatter *utils.Formatter
	Logger    *zap.SugaredLogger

	balances model.Balances
}

func NewPaperBalanceService(
	config *model.StrategyConfig,
	quote decimal.Decimal,
	base decimal.Decimal,
	formatter *utils.Formatter,
	logger *zap.SugaredLogger,
) *BalanceService {
	return &BalanceService{
		Config:    config,
		Formatter: formatter,
		Logger:    logger,
		balances: model.Balances{
			QuoteAvailable: quote,
			BaseAvailable:  base,
		},
	}
}

func (b *BalanceService) GetBalances() model.Balances {
	return b.balances
}

func (b *BalanceService) Refresh() error {
	if b.Config.IsPaper() {
		b.Logger.Infof(
			"[%s] PAPER BALANCES: %s=%s, %s=%s",
			b.Config.GetDisplaySymbol(),
			b.Config.BaseAsset,
			b.Formatter.FormatBase(b.balances.BaseAvailable),
			b.Config.QuoteAsset,
			b.Formatter.FormatQuote(b.balances.QuoteAvailable),
		)

		return nil
	}

	if b.Account == nil {
		return errors.New("exchange account API is not configured")
	}

	assetBalances, err := b.Account.GetBalances()
	if err != nil {
		b.Logger.Errorf("[%s] Balance update failed: %s", b.Config.GetDisplaySymbol(), err.Error())
		return err
	}

	b.balances.BaseAvailable = b.pickBalance(assetBalances, b.Config.BaseAsset)
	b.balances.QuoteAvailable = b.pickBalance(assetBalances, b.Config.QuoteAsset)

	b.Logger.Infof(
		"[%s] Balances refreshed: %s=%s, %s=%s",
		b.Config.GetDisplaySymbol(),
		b.Config.BaseAsset,
		b.Formatter.FormatBase(b.balances.BaseAvailable),
		b.Config.QuoteAsset,
		b.Formatter.FormatQuote(b.balances.QuoteAvailable),
	)

	return nil
}

// ReconcileFilledOrders drops tracked orders the exchange reports as closed, canceled or expired.
func (b *BalanceService) ReconcileFilledOrders(ledger *OrderLedger) {
	if b.Config.IsPaper() || b.OrderAPI == nil {
		return
	}

	for _, order := range ledger.Orders() {
		exchangeOrder, err := b.OrderAPI.QueryOrder(b.Config.GetSymbol(), order.Id)
		if err != nil {
			b.Logger.Warnf("[%s] Could not check status of order %s: %s", b.Config.GetDisplaySymbol(), order.Id, err.Error())
			continue
		}

		if exchangeOrder.IsClosed() {
			b.Logger.Infof("[%s] Order %s has been filled, removing from active orders", b.Config.GetDisplaySymbol(), order.Id)
			ledger.Remove(order.Id)
		}

		if exchangeOrder.IsCanceled() {
			b.Logger.Infof("[%s] Order %s is %s on exchange, removing from active orders", b.Config.GetDisplaySymbol(), order.Id, exchangeOrder.Status)
			ledger.Remove(order.Id)
		}
	}
}

// ResetBaseline captures the current quote-equivalent value as the capital-preservation baseline.
func (b *BalanceService) ResetBaseline(price decimal.Decimal, priceKnown bool) decimal.Decimal {
	baseline := b.balances.QuoteAvailable
	if priceKnown {
		baseline = baseline.Add(b.balances.BaseAvailable.Mul(price))
	}
	b.balances.InitialQuoteOnlyBalance = baseline

	b.Logger.Infof(
		"[%s] Reset initial balance to: %s %s",
		b.Config.GetDisplaySymbol(),
		b.Formatter.FormatQuote(baseline),
		b.Config.QuoteAsset,
	)

	return baseline
}

// CaptureStartup stores the startup total value and sets the baseline once if it is still unset.
func (b *BalanceService) CaptureStartup(price decimal.Decimal, priceKnown bool) {
	value := b.balances.QuoteAvailable
	if priceKnown {
		value = value.Add(b.balances.BaseAvailable.Mul(price))
	}
	b.balances.StartupValue = value

	if b.balances.InitialQuoteOnlyBalance.IsZero() && value.IsPositive() {
		b.ResetBaseline(price, priceKnown)
	}
}

func (b *BalanceService) applyBuy(spend decimal.Decimal, quantity decimal.Decimal) {
	b.balances.QuoteAvailable = b.balances.QuoteAvailable.Sub(spend)
	b.balances.BaseAvailable = b.balances.BaseAvailable.Add(quantity)
	b.logMutation("buy")
}

func (b *BalanceService) applySell(quantity decimal.Decimal, proceeds decimal.Decimal) {
	b.balances.BaseAvailable = b.balances.BaseAvailable.Sub(quantity)
	b.balances.QuoteAvailable = b.balances.QuoteAvailable.Add(proceeds)
	b.logMutation("sell")
}

func (b *BalanceService) logMutation(operation string) {
	b.Logger.Infof(
		"[%s] Paper balances after %s: %s=%s, %s=%s",
		b.Config.GetDisplaySymbol(),
		operation,
		b.Config.BaseAsset,
		b.Formatter.FormatBase(b.balances.BaseAvailable),
		b.Config.QuoteAsset,
		b.Formatter.FormatQuote(b.balances.QuoteAvailable),
	)
}

func (b *BalanceService) pickBalance(assetBalances map[string]decimal.Decimal, asset string) decimal.Decimal {
	for _, code := range b.Formatter.GetAssetCodes(asset) {
		if balance, ok := assetBalances[code]; ok {
			return balance
		}
	}

	b.Logger.Warnf("[%s] %s balance is not reported by exchange", b.Config.GetDisplaySymbol(), asset)

	return decimal.Zero
}

func (b *BalanceService) String() string {
	return fmt.Sprintf(
		"%s=%s %s=%s",
		b.Config.BaseAsset,
		b.Formatter.FormatBase(b.balances.BaseAvailable),
		b.Config.QuoteAsset,
		b.Formatter.FormatQuote(b.balances.QuoteAvailable),
	)
}

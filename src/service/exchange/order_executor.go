package exchange

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/client"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"go.uber.org/zap"
	"strings"
)

type ExecutionResult struct {
	Trade model.Trade
	Fee   decimal.Decimal
	Quote decimal.Decimal
}

type OrderExecutorInterface interface {
	Buy(input decimal.Decimal, price decimal.Decimal) (ExecutionResult, error)
	Sell(input decimal.Decimal, price decimal.Decimal) (ExecutionResult, error)
	GetTotalFees() decimal.Decimal
}

// OrderExecutor is the only place paper balances are mutated. Access is serialized by TradingEngine.
type OrderExecutor struct {
	Config         *model.StrategyConfig
	Exchange       client.ExchangeOrderAPIInterface
	BalanceService *BalanceService
	OrderLedger    *OrderLedger
	TradeLedger    *TradeLedger
	TimeService    utils.TimeServiceInterface
	Formatter      *utils.Formatter
	Logger         *zap.SugaredLogger

	totalFees decimal.Decimal
}

func (m *OrderExecutor) GetTotalFees() decimal.Decimal {
	return m.totalFees
}

func (m *OrderExecutor) Buy(input decimal.Decimal, price decimal.Decimal) (ExecutionResult, error) {
	symbol := m.Config.GetDisplaySymbol()
	spend := input.Mul(m.Config.PositionRatio())

	if spend.LessThan(m.Config.MinQuoteTrade) {
		return ExecutionResult{}, fmt.Errorf(
			"%w: [%s] %s to spend %s is below minimum %s",
			model.ErrTradeRejected,
			symbol,
			m.Config.QuoteAsset,
			m.Formatter.FormatQuote(spend),
			m.Formatter.FormatQuote(m.Config.MinQuoteTrade),
		)
	}

	if m.Config.IsLive() {
		available := m.BalanceService.GetBalances().QuoteAvailable
		spend = decimal.Min(spend, available)
		if spend.LessThan(m.Config.MinQuoteTrade) {
			return ExecutionResult{}, fmt.Errorf(
				"%w: [%s] adjusted %s to spend %s is below minimum %s",
				model.ErrTradeRejected,
				symbol,
				m.Config.QuoteAsset,
				m.Formatter.FormatQuote(spend),
				m.Formatter.FormatQuote(m.Config.MinQuoteTrade),
			)
		}
	}

	limitPrice := price.Mul(decimal.NewFromInt(1).Sub(m.Config.PriceAdjustment))
	if !limitPrice.IsPositive() {
		return ExecutionResult{}, fmt.Errorf("%w: [%s] buy price %s is not positive", model.ErrTradeRejected, symbol, limitPrice.String())
	}
	quantity := spend.Div(limitPrice)

	if m.Config.IsPaper() {
		fee := spend.Mul(m.Config.TakerFee)
		m.BalanceService.applyBuy(spend, quantity)
		m.totalFees = m.totalFees.Add(fee)

		return m.record(model.OrderSideBuy, quantity, limitPrice, "", fee, spend), nil
	}

	m.Logger.Infof(
		"[%s] Attempting REAL BUY: %s %s at limit price %s",
		symbol,
		m.Formatter.FormatBase(quantity),
		m.Config.BaseAsset,
		m.Formatter.FormatPrice(limitPrice),
	)

	orderId, err := m.Exchange.LimitOrder(m.Config.GetSymbol(), model.OrderSideBuy, quantity, limitPrice)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("REAL BUY FAILED (%s): %w", model.ClassifyOrderError(err), err)
	}

	m.OrderLedger.Register(orderId, model.OrderSideBuy, m.TimeService.Now())

	return m.record(model.OrderSideBuy, quantity, limitPrice, orderId, decimal.Zero, spend), nil
}

func (m *OrderExecutor) Sell(input decimal.Decimal, price decimal.Decimal) (ExecutionResult, error) {
	symbol := m.Config.GetDisplaySymbol()
	quantity := input.Mul(m.Config.PositionRatio())

	if quantity.LessThan(m.Config.MinBaseTrade) {
		return ExecutionResult{}, fmt.Errorf(
			"%w: [%s] %s to sell %s is below minimum %s",
			model.ErrTradeRejected,
			symbol,
			m.Config.BaseAsset,
			m.Formatter.FormatBase(quantity),
			m.Formatter.FormatBase(m.Config.MinBaseTrade),
		)
	}

	if m.Config.IsLive() {
		available := m.BalanceService.GetBalances().BaseAvailable
		quantity = decimal.Min(quantity, available)
		if quantity.LessThan(m.Config.MinBaseTrade) {
			return ExecutionResult{}, fmt.Errorf(
				"%w: [%s] adjusted %s to sell %s is below minimum %s",
				model.ErrTradeRejected,
				symbol,
				m.Config.BaseAsset,
				m.Formatter.FormatBase(quantity),
				m.Formatter.FormatBase(m.Config.MinBaseTrade),
			)
		}
	}

	limitPrice := price.Mul(decimal.NewFromInt(1).Add(m.Config.PriceAdjustment))

	if lastBuy, ok := m.TradeLedger.LastTradeOfSide(model.OrderSideBuy); ok {
		profitBuffer := lastBuy.Price.Mul(m.Config.ProfitBufferRatio())
		if limitPrice.LessThanOrEqual(profitBuffer) {
			return ExecutionResult{}, fmt.Errorf(
				"%w: [%s] sell target price %s is not sufficiently higher than last buy price %s",
				model.ErrTradeRejected,
				symbol,
				m.Formatter.FormatPrice(limitPrice),
				m.Formatter.FormatPrice(lastBuy.Price),
			)
		}
	}

	gross := quantity.Mul(limitPrice)

	if m.Config.IsPaper() {
		fee := gross.Mul(m.Config.TakerFee)
		proceeds := gross.Sub(fee)
		m.BalanceService.applySell(quantity, proceeds)
		m.totalFees = m.totalFees.Add(fee)

		return m.record(model.OrderSideSell, quantity, limitPrice, "", fee, proceeds), nil
	}

	m.Logger.Infof(
		"[%s] Attempting REAL SELL: %s %s at limit price %s",
		symbol,
		m.Formatter.FormatBase(quantity),
		m.Config.BaseAsset,
		m.Formatter.FormatPrice(limitPrice),
	)

	orderId, err := m.Exchange.LimitOrder(m.Config.GetSymbol(), model.OrderSideSell, quantity, limitPrice)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("REAL SELL FAILED (%s): %w", model.ClassifyOrderError(err), err)
	}

	m.OrderLedger.Register(orderId, model.OrderSideSell, m.TimeService.Now())

	return m.record(model.OrderSideSell, quantity, limitPrice, orderId, decimal.Zero, gross), nil
}

// record appends the trade and writes the line the trade log parser recovers on the next start.
func (m *OrderExecutor) record(
	side model.OrderSide,
	quantity decimal.Decimal,
	price decimal.Decimal,
	orderId model.OrderId,
	fee decimal.Decimal,
	quote decimal.Decimal,
) ExecutionResult {
	trade := model.Trade{
		Id:        uuid.New().String(),
		Timestamp: m.TimeService.Now(),
		Price:     price,
		Side:      side,
		Quantity:  quantity,
		OrderId:   orderId,
		Mode:      m.Config.Mode,
		Symbol:    m.Config.GetSymbol(),
	}
	m.TradeLedger.Append(trade)

	mode := strings.ToUpper(m.Config.Mode)
	if orderId != "" {
		mode = fmt.Sprintf("%s %s", mode, orderId)
	}

	m.Logger.Infof(
		"Executed %s order: %s %s at price: %s %s for %s %s, fee %s [%s]",
		side,
		m.Formatter.FormatBase(quantity),
		m.Config.BaseAsset,
		m.Formatter.FormatPrice(price),
		m.Config.QuoteAsset,
		m.Formatter.FormatQuote(quote),
		m.Config.QuoteAsset,
		m.Formatter.FormatFee(fee),
		mode,
	)

	return ExecutionResult{
		Trade: trade,
		Fee:   fee,
		Quote: quote,
	}
}

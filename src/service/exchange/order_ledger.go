package exchange

import (
	"gitlab.com/open-soft/go-rsi-bot/src/client"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"go.uber.org/zap"
	"sort"
	"time"
)

// OrderLedger tracks live orders from submission until a fill or a confirmed cancel.
// In paper mode it stays empty. Access is serialized by TradingEngine.
type OrderLedger struct {
	OrderAPI client.ExchangeOrderAPIInterface
	Symbol   string
	Enabled  bool
	Logger   *zap.SugaredLogger

	orders map[model.OrderId]model.TrackedOrder
}

func NewOrderLedger(orderAPI client.ExchangeOrderAPIInterface, symbol string, enabled bool, logger *zap.SugaredLogger) *OrderLedger {
	return &OrderLedger{
		OrderAPI: orderAPI,
		Symbol:   symbol,
		Enabled:  enabled,
		Logger:   logger,
		orders:   make(map[model.OrderId]model.TrackedOrder),
	}
}

func (l *OrderLedger) Register(orderId model.OrderId, side model.OrderSide, now time.Time) {
	if !l.Enabled {
		return
	}

	l.orders[orderId] = model.TrackedOrder{
		Id:       orderId,
		Side:     side,
		PlacedAt: now,
	}
}

func (l *OrderLedger) Remove(orderId model.OrderId) {
	delete(l.orders, orderId)
}

func (l *OrderLedger) Has(orderId model.OrderId) bool {
	_, ok := l.orders[orderId]

	return ok
}

func (l *OrderLedger) Count() int {
	return len(l.orders)
}

// Orders returns a copy ordered by placement time.
func (l *OrderLedger) Orders() []model.TrackedOrder {
	orders := make([]model.TrackedOrder, 0, len(l.orders))
	for _, order := range l.orders {
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		if orders[i].PlacedAt.Equal(orders[j].PlacedAt) {
			return orders[i].Id < orders[j].Id
		}

		return orders[i].PlacedAt.Before(orders[j].PlacedAt)
	})

	return orders
}

// ExpireStale cancels orders older than timeout. A failed cancel keeps the order for the next tick.
func (l *OrderLedger) ExpireStale(now time.Time, timeout time.Duration) int {
	if !l.Enabled {
		return 0
	}

	cancelled := 0
	for _, order := range l.Orders() {
		if !order.IsStale(now, timeout) {
			continue
		}

		err := l.OrderAPI.CancelOrder(l.Symbol, order.Id)
		if err != nil {
			l.Logger.Errorf("[%s] Failed to cancel order %s: %s", l.Symbol, order.Id, err.Error())
			continue
		}

		l.Logger.Infof("[%s] Cancelled stale %s order: %s", l.Symbol, order.Side, order.Id)
		l.Remove(order.Id)
		cancelled++
	}

	return cancelled
}

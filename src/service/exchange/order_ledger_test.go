package exchange_test

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/service/exchange"
	"go.uber.org/zap"
	"testing"
	"time"
)

func TestExpireStaleCancelsOnlyOrdersOlderThanTimeout(t *testing.T) {
	assertion := assert.New(t)

	orderAPI := new(ExchangeOrderAPIMock)
	ledger := exchange.NewOrderLedger(orderAPI, "DOGEUSDT", true, zap.NewNop().Sugar())

	placedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ledger.Register("O-EXACT", model.OrderSideBuy, placedAt)
	ledger.Register("O-OLD", model.OrderSideSell, placedAt.Add(-time.Second))
	orderAPI.On("CancelOrder", "DOGEUSDT", model.OrderId("O-OLD")).Return(nil)

	cancelled := ledger.ExpireStale(placedAt.Add(30*time.Minute), 30*time.Minute)

	assertion.Equal(1, cancelled)
	assertion.True(ledger.Has("O-EXACT"))
	assertion.False(ledger.Has("O-OLD"))
	orderAPI.AssertNotCalled(t, "CancelOrder", "DOGEUSDT", model.OrderId("O-EXACT"))
}

func TestExpireStaleKeepsOrderWhenCancelFails(t *testing.T) {
	assertion := assert.New(t)

	orderAPI := new(ExchangeOrderAPIMock)
	ledger := exchange.NewOrderLedger(orderAPI, "DOGEUSDT", true, zap.NewNop().Sugar())

	placedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ledger.Register("O-1", model.OrderSideBuy, placedAt)
	orderAPI.On("CancelOrder", "DOGEUSDT", model.OrderId("O-1")).Return(errors.New("EService:Unavailable")).Once()
	orderAPI.On("CancelOrder", "DOGEUSDT", model.OrderId("O-1")).Return(nil).Once()

	now := placedAt.Add(31 * time.Minute)
	assertion.Equal(0, ledger.ExpireStale(now, 30*time.Minute))
	assertion.True(ledger.Has("O-1"))

	assertion.Equal(1, ledger.ExpireStale(now.Add(time.Minute), 30*time.Minute))
	assertion.Equal(0, ledger.Count())
	orderAPI.AssertNumberOfCalls(t, "CancelOrder", 2)
}

func TestDisabledLedgerTracksNothing(t *testing.T) {
	assertion := assert.New(t)

	orderAPI := new(ExchangeOrderAPIMock)
	ledger := exchange.NewOrderLedger(orderAPI, "DOGEUSDT", false, zap.NewNop().Sugar())

	ledger.Register("O-1", model.OrderSideBuy, time.Now().Add(-time.Hour))

	assertion.Equal(0, ledger.Count())
	assertion.Equal(0, ledger.ExpireStale(time.Now(), time.Minute))
	orderAPI.AssertNotCalled(t, "CancelOrder")
}

func TestOrdersAreSortedByPlacement(t *testing.T) {
	assertion := assert.New(t)

	ledger := exchange.NewOrderLedger(new(ExchangeOrderAPIMock), "DOGEUSDT", true, zap.NewNop().Sugar())
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ledger.Register("O-2", model.OrderSideSell, now.Add(time.Minute))
	ledger.Register("O-1", model.OrderSideBuy, now)

	orders := ledger.Orders()
	assertion.Len(orders, 2)
	assertion.Equal(model.OrderId("O-1"), orders[0].Id)
	assertion.Equal(model.OrderId("O-2"), orders[1].Id)
}

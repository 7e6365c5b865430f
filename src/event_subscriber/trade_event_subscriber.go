package event_subscriber

import (
	"gitlab.com/open-soft/go-rsi-bot/src/event"
	"gitlab.com/open-soft/go-rsi-bot/src/repository"
	"gitlab.com/open-soft/go-rsi-bot/src/service/notification"
	"go.uber.org/zap"
)

// TradePersistenceSubscriber stores executed trades in MySQL.
type TradePersistenceSubscriber struct {
	TradeRepository repository.TradeStorageInterface
	Logger          *zap.SugaredLogger
}

func (t TradePersistenceSubscriber) GetSubscribedEvents() map[string]func(interface{}) {
	return map[string]func(interface{}){
		event.EventTradeExecuted: t.OnTradeExecuted,
	}
}

func (t TradePersistenceSubscriber) OnTradeExecuted(eventModel interface{}) {
	e, ok := eventModel.(event.TradeExecuted)
	if !ok {
		return
	}

	err := t.TradeRepository.Create(e.Trade)
	if err != nil {
		t.Logger.Errorf("[%s] Trade %s is not persisted: %s", e.Trade.Symbol, e.Trade.Id, err.Error())
	}
}

type TradeNotificationSubscriber struct {
	Notificator notification.TelegramNotificatorInterface
}

func (t TradeNotificationSubscriber) GetSubscribedEvents() map[string]func(interface{}) {
	return map[string]func(interface{}){
		event.EventTradeExecuted: t.OnTradeExecuted,
	}
}

func (t TradeNotificationSubscriber) OnTradeExecuted(eventModel interface{}) {
	e, ok := eventModel.(event.TradeExecuted)
	if !ok {
		return
	}

	// the notificator logs its own send failures
	_ = t.Notificator.TradeExecuted(e.Trade, e.Fee, e.Quote)
}

package service

import (
	"gitlab.com/open-soft/go-rsi-bot/src/event_subscriber"
	"go.uber.org/zap"
)

type EventDispatcherInterface interface {
	Dispatch(event interface{}, eventName string)
}

type EventDispatcher struct {
	Subscribers []event_subscriber.SubscriberInterface
	Enabled     bool
	Logger      *zap.SugaredLogger
}

func (d *EventDispatcher) Subscribe(subscriber event_subscriber.SubscriberInterface) {
	d.Subscribers = append(d.Subscribers, subscriber)
}

// Dispatch calls subscribers synchronously, a panicking subscriber does not stop the others.
func (d *EventDispatcher) Dispatch(event interface{}, eventName string) {
	if !d.Enabled {
		return
	}

	for _, subscriber := range d.Subscribers {
		eventMap := subscriber.GetSubscribedEvents()
		callback, ok := eventMap[eventName]
		if ok {
			d.call(callback, event, eventName)
		}
	}
}

func (d *EventDispatcher) call(callback func(interface{}), event interface{}, eventName string) {
	defer func() {
		if r := recover(); r != nil {
			d.Logger.Errorf("[%s] Subscriber failed: %v", eventName, r)
		}
	}()

	callback(event)
}

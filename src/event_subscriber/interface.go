package event_subscriber

// SubscriberInterface maps event names to handlers, see service.EventDispatcher.
type SubscriberInterface interface {
	GetSubscribedEvents() map[string]func(interface{})
}

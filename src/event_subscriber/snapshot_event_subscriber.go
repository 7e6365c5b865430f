package event_subscriber

import (
	"gitlab.com/open-soft/go-rsi-bot/src/event"
	"gitlab.com/open-soft/go-rsi-bot/src/repository"
	"go.uber.org/zap"
)

// SnapshotCacheSubscriber keeps the latest dashboard snapshot in Redis for external readers.
type SnapshotCacheSubscriber struct {
	SnapshotRepository repository.SnapshotStorageInterface
	Logger             *zap.SugaredLogger
}

func (s SnapshotCacheSubscriber) GetSubscribedEvents() map[string]func(interface{}) {
	return map[string]func(interface{}){
		event.EventTickCompleted: s.OnTickCompleted,
	}
}

func (s SnapshotCacheSubscriber) OnTickCompleted(eventModel interface{}) {
	e, ok := eventModel.(event.TickCompleted)
	if !ok {
		return
	}

	err := s.SnapshotRepository.SaveSnapshot(e.Snapshot)
	if err != nil {
		s.Logger.Warnf("[%s] Snapshot cache update failed: %s", e.Snapshot.Symbol, err.Error())
	}
}

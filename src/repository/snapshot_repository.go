package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"time"
)

type SnapshotStorageInterface interface {
	SaveSnapshot(snapshot model.DashboardSnapshot) error
}

type SnapshotRepository struct {
	RDB     *redis.Client
	Ctx     *context.Context
	BotUuid string
	TTL     time.Duration
}

func (s *SnapshotRepository) getCacheKey() string {
	return fmt.Sprintf("rsi-dashboard-snapshot-bot-%s", s.BotUuid)
}

func (s *SnapshotRepository) SaveSnapshot(snapshot model.DashboardSnapshot) error {
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return s.RDB.Set(*s.Ctx, s.getCacheKey(), string(encoded), s.TTL).Err()
}

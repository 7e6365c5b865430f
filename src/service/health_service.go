package service

import (
	"context"
	"database/sql"
	"github.com/rafacas/sysstats"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"runtime"
)

type HealthService struct {
	Engine  *TradingEngine
	DB      *sql.DB
	RDB     *redis.Client
	Ctx     *context.Context
	BotUuid string
}

func (h *HealthService) HealthCheck() model.BotHealth {
	snapshot := h.Engine.Snapshot()

	memStats, _ := sysstats.GetMemStats()
	loadAvg, _ := sysstats.GetLoadAvg()

	dbStatus := model.DbStatusDisabled
	if h.DB != nil {
		dbStatus = model.DbStatusOk
		if h.DB.Ping() != nil {
			dbStatus = model.DbStatusFail
		}
	}

	redisStatus := model.RedisStatusDisabled
	if h.RDB != nil {
		redisStatus = model.RedisStatusOk
		if h.RDB.Ping(*h.Ctx).Err() != nil {
			redisStatus = model.RedisStatusFail
		}
	}

	exchangeStatus := model.ExchangeStatusOk
	if snapshot.UpdatedAt == "" {
		exchangeStatus = model.ExchangeStatusFail
	}

	return model.BotHealth{
		BotUuid:        h.BotUuid,
		Mode:           snapshot.Mode,
		Symbol:         snapshot.Symbol,
		TradingEnabled: snapshot.TradingEnabled,
		DbStatus:       dbStatus,
		RedisStatus:    redisStatus,
		ExchangeStatus: exchangeStatus,
		Cores:          runtime.NumCPU(),
		Memory:         memStats,
		LoadAvg:        loadAvg,
		Updates: map[string]string{
			snapshot.Symbol: snapshot.UpdatedAt,
		},
	}
}

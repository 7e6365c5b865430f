package repository

import (
	"database/sql"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"time"
)

type TradeStorageInterface interface {
	Create(trade model.Trade) error
	GetList(limit int64) ([]model.Trade, error)
}

type TradeRepository struct {
	DB      *sql.DB
	BotUuid string
}

func (t *TradeRepository) EnsureSchema() error {
	_, err := t.DB.Exec(`
		CREATE TABLE IF NOT EXISTS rsi_trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			bot_uuid VARCHAR(36) NOT NULL,
			symbol VARCHAR(32) NOT NULL,
			side VARCHAR(4) NOT NULL,
			price DECIMAL(24, 12) NOT NULL,
			quantity DECIMAL(24, 12) NOT NULL,
			order_id VARCHAR(64) NULL,
			mode VARCHAR(16) NOT NULL,
			created_at DATETIME(3) NOT NULL,
			KEY idx_bot_created (bot_uuid, created_at)
		)
	`)

	return err
}

func (t *TradeRepository) Create(trade model.Trade) error {
	_, err := t.DB.Exec(`
		INSERT INTO rsi_trade SET
			id = ?,
			bot_uuid = ?,
			symbol = ?,
			side = ?,
			price = ?,
			quantity = ?,
			order_id = ?,
			mode = ?,
			created_at = ?
		ON DUPLICATE KEY UPDATE
			price = ?,
			quantity = ?
	`,
		trade.Id,
		t.BotUuid,
		trade.Symbol,
		string(trade.Side),
		trade.Price,
		trade.Quantity,
		trade.OrderId.String(),
		trade.Mode,
		trade.Timestamp,
		trade.Price,
		trade.Quantity,
	)

	return err
}

// GetList returns the newest trades first.
func (t *TradeRepository) GetList(limit int64) ([]model.Trade, error) {
	res, err := t.DB.Query(`
		SELECT
			t.id as Id,
			t.symbol as Symbol,
			t.side as Side,
			t.price as Price,
			t.quantity as Quantity,
			COALESCE(t.order_id, '') as OrderId,
			t.mode as Mode,
			t.created_at as CreatedAt
		FROM rsi_trade t
		WHERE t.bot_uuid = ?
		ORDER BY t.created_at DESC
		LIMIT ?
	`, t.BotUuid, limit)

	if err != nil {
		return nil, err
	}
	defer res.Close()

	list := make([]model.Trade, 0)
	for res.Next() {
		var trade model.Trade
		var side string
		var orderId string
		var createdAt time.Time
		err = res.Scan(
			&trade.Id,
			&trade.Symbol,
			&side,
			&trade.Price,
			&trade.Quantity,
			&orderId,
			&trade.Mode,
			&createdAt,
		)

		if err != nil {
			return nil, err
		}

		trade.Side = model.OrderSide(side)
		trade.OrderId = model.OrderId(orderId)
		trade.Timestamp = createdAt
		list = append(list, trade)
	}

	return list, res.Err()
}

package notification_test

import (
	"errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/service/notification"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"testing"
	"time"
)

type TelegramSenderMock struct {
	mock.Mock
}

func (m *TelegramSenderMock) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return args.Get(0).(tgbotapi.Message), args.Error(1)
}

func newNotificator(sender notification.TelegramSenderInterface) *notification.TelegramNotificator {
	return &notification.TelegramNotificator{
		Bot:        sender,
		ChatId:     42,
		QuoteAsset: "USDT",
		BaseAsset:  "DOGE",
		Logger:     zap.NewNop().Sugar(),
	}
}

func sellTrade() model.Trade {
	return model.Trade{
		Timestamp: time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC),
		Price:     decimal.RequireFromString("0.2008"),
		Side:      model.OrderSideSell,
		Quantity:  decimal.NewFromInt(97),
		OrderId:   "OQCLML-BW3P3-BUCMWZ",
		Mode:      model.TradeModeLive,
		Symbol:    "DOGE/USDT",
	}
}

func TestFormatTrade(t *testing.T) {
	message := newNotificator(new(TelegramSenderMock)).FormatTrade(sellTrade(), "0.0506", "19.43")

	assert.Equal(t, "SELL DOGE/USDT (LIVE)\n"+
		"Quantity: 97.00000000 DOGE\n"+
		"Price: 0.20080000 USDT\n"+
		"Total: 19.43 USDT\n"+
		"Fee: 0.0506 USDT\n"+
		"Time: 2024-03-01 10:05:00\n"+
		"Order: OQCLML-BW3P3-BUCMWZ", message)
}

func TestTradeExecutedSendsMessageToChat(t *testing.T) {
	assertion := assert.New(t)

	sender := new(TelegramSenderMock)
	sender.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		message, ok := c.(tgbotapi.MessageConfig)
		return ok && message.ChatID == 42 && message.Text != ""
	})).Return(tgbotapi.Message{}, nil)

	assertion.Nil(newNotificator(sender).TradeExecuted(sellTrade(), "0.0506", "19.43"))
	sender.AssertExpectations(t)
}

func TestTradeExecutedReturnsSendError(t *testing.T) {
	assertion := assert.New(t)

	sender := new(TelegramSenderMock)
	sender.On("Send", mock.Anything).Return(tgbotapi.Message{}, errors.New("Forbidden: bot was blocked by the user"))

	core, logs := observer.New(zap.WarnLevel)
	notificator := newNotificator(sender)
	notificator.Logger = zap.New(core).Sugar()

	err := notificator.TradeExecuted(sellTrade(), "0.0506", "19.43")

	assertion.EqualError(err, "Forbidden: bot was blocked by the user")
	assertion.Equal(1, logs.Len())
	assertion.Equal("[DOGE/USDT] Telegram SELL notification failed: Forbidden: bot was blocked by the user", logs.All()[0].Message)
}

package notification

import (
	"fmt"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"go.uber.org/zap"
	"strings"
)

type TelegramSenderInterface interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotificatorInterface interface {
	TradeExecuted(trade model.Trade, fee string, quote string) error
}

type TelegramNotificator struct {
	Bot        TelegramSenderInterface
	ChatId     int64
	QuoteAsset string
	BaseAsset  string
	Logger     *zap.SugaredLogger
}

func (t *TelegramNotificator) TradeExecuted(trade model.Trade, fee string, quote string) error {
	_, err := t.Bot.Send(tgbotapi.NewMessage(t.ChatId, t.FormatTrade(trade, fee, quote)))
	if err != nil {
		t.Logger.Warnf("[%s] Telegram %s notification failed: %s", trade.Symbol, trade.Side.Upper(), err.Error())
		return err
	}

	t.Logger.Infof("[%s] Telegram %s notification sent", trade.Symbol, trade.Side.Upper())

	return nil
}

func (t *TelegramNotificator) FormatTrade(trade model.Trade, fee string, quote string) string {
	lines := []string{
		fmt.Sprintf("%s %s (%s)", trade.Side.Upper(), trade.Symbol, strings.ToUpper(trade.Mode)),
		fmt.Sprintf("Quantity: %s %s", trade.Quantity.StringFixed(utils.BasePrecision), t.BaseAsset),
		fmt.Sprintf("Price: %s %s", trade.Price.StringFixed(utils.BasePrecision), t.QuoteAsset),
		fmt.Sprintf("Total: %s %s", quote, t.QuoteAsset),
		fmt.Sprintf("Fee: %s %s", fee, t.QuoteAsset),
		fmt.Sprintf("Time: %s", trade.Timestamp.Format(utils.DateTimeLayout)),
	}
	if trade.OrderId != "" {
		lines = append(lines, fmt.Sprintf("Order: %s", trade.OrderId))
	}

	return strings.Join(lines, "\n")
}

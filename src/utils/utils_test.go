package utils_test

import (
	"context"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatterPrecision(t *testing.T) {
	assertion := assert.New(t)
	formatter := utils.Formatter{}

	amount := decimal.RequireFromString("61.186631559")
	assertion.Equal("61.18663156", formatter.FormatBase(amount))
	assertion.Equal("61.19", formatter.FormatQuote(amount))
	assertion.Equal("61.1866", formatter.FormatFee(amount))
	assertion.Equal("0.14050000", formatter.FormatPrice(decimal.RequireFromString("0.1405")))
}

func TestFormatterKrakenInterval(t *testing.T) {
	assertion := assert.New(t)
	formatter := utils.Formatter{}

	minutes, err := formatter.KrakenInterval("5m")
	assertion.Nil(err)
	assertion.Equal(5, minutes)

	minutes, err = formatter.KrakenInterval("1H")
	assertion.Nil(err)
	assertion.Equal(60, minutes)

	_, err = formatter.KrakenInterval("7m")
	assertion.NotNil(err)
}

func TestFormatterGetAssetCodes(t *testing.T) {
	assertion := assert.New(t)
	formatter := utils.Formatter{}

	assertion.Equal([]string{"XXDG", "XDG", "DOGE"}, formatter.GetAssetCodes("doge"))
	assertion.Equal([]string{"USDT"}, formatter.GetAssetCodes("USDT"))
}

func TestTimeHelperSleepIsCancellable(t *testing.T) {
	assertion := assert.New(t)
	helper := utils.TimeHelper{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	started := time.Now()
	err := helper.Sleep(ctx, time.Hour)
	assertion.ErrorIs(err, context.Canceled)
	assertion.True(time.Since(started) < time.Second)

	assertion.Nil(helper.Sleep(context.Background(), time.Millisecond))
}

func TestNewLoggerAppendsToFile(t *testing.T) {
	assertion := assert.New(t)

	logPath := filepath.Join(t.TempDir(), "logs", "rsi_trading.log")
	logger, err := utils.NewLogger(logPath)
	assertion.Nil(err)

	logger.Sugar().Infof("[%s] Executed %s order", "DOGE/USDT", "buy")
	_ = logger.Sync()

	content, err := os.ReadFile(logPath)
	assertion.Nil(err)
	assertion.True(strings.Contains(string(content), "INFO\t[DOGE/USDT] Executed buy order"))
}

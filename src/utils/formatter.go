package utils

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"strings"
)

const DateTimeLayout = "2006-01-02 15:04:05"

const BasePrecision = 8
const QuotePrecision = 2
const FeePrecision = 4

var krakenIntervals = map[string]int{
	"1m":  1,
	"5m":  5,
	"15m": 15,
	"30m": 30,
	"1h":  60,
	"4h":  240,
	"1d":  1440,
	"1w":  10080,
	"15d": 21600,
}

var krakenAssetAliases = map[string][]string{
	"BTC":  {"XXBT", "XBT"},
	"DOGE": {"XXDG", "XDG"},
	"ETH":  {"XETH"},
	"LTC":  {"XLTC"},
	"XRP":  {"XXRP"},
	"USD":  {"ZUSD"},
	"EUR":  {"ZEUR"},
}

type Formatter struct {
}

func (m *Formatter) FormatBase(amount decimal.Decimal) string {
	return amount.StringFixed(BasePrecision)
}

func (m *Formatter) FormatQuote(amount decimal.Decimal) string {
	return amount.StringFixed(QuotePrecision)
}

func (m *Formatter) FormatFee(amount decimal.Decimal) string {
	return amount.StringFixed(FeePrecision)
}

func (m *Formatter) FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(BasePrecision)
}

// KrakenInterval converts an interval like "5m" into Kraken OHLC minutes.
func (m *Formatter) KrakenInterval(interval string) (int, error) {
	minutes, ok := krakenIntervals[strings.ToLower(interval)]
	if !ok {
		return 0, errors.New(fmt.Sprintf("Interval %s is not supported", interval))
	}

	return minutes, nil
}

// GetAssetCodes lists the Kraken balance keys an asset may be reported under, plain code last.
func (m *Formatter) GetAssetCodes(asset string) []string {
	asset = strings.ToUpper(asset)
	codes := make([]string, 0)
	if aliases, ok := krakenAssetAliases[asset]; ok {
		codes = append(codes, aliases...)
	}

	return append(codes, asset)
}

package exchange

import (
	"bufio"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"io"
	"strings"
	"time"
)

const executedMarker = "Executed "
const orderMarker = " order"
const priceMarker = "price: "

var tradeLogTimeLayouts = []string{
	"2006-01-02T15:04:05.000Z0700",
	time.RFC3339Nano,
	"2006-01-02 15:04:05,000",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
}

// ParseTradeLog reads "Executed <side> order ... price: <price>" lines.
// Lines that do not carry a timestamp, a side and a numeric price are counted as skipped.
func ParseTradeLog(reader io.Reader) ([]model.Trade, int) {
	trades := make([]model.Trade, 0)
	skipped := 0

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Executed") {
			continue
		}

		trade, ok := parseTradeLine(line)
		if !ok {
			skipped++
			continue
		}

		trades = append(trades, trade)
	}

	return trades, skipped
}

func parseTradeLine(line string) (model.Trade, bool) {
	var trade model.Trade

	timestamp, ok := parseLineTimestamp(line)
	if !ok {
		return trade, false
	}

	_, afterExecuted, found := strings.Cut(line, executedMarker)
	if !found {
		return trade, false
	}
	sideText, _, found := strings.Cut(afterExecuted, orderMarker)
	if !found {
		return trade, false
	}
	side, ok := model.ParseOrderSide(sideText)
	if !ok {
		return trade, false
	}

	_, afterPrice, found := strings.Cut(line, priceMarker)
	if !found {
		return trade, false
	}
	priceFields := strings.Fields(afterPrice)
	if len(priceFields) == 0 {
		return trade, false
	}
	price, err := decimal.NewFromString(priceFields[0])
	if err != nil || !price.IsPositive() {
		return trade, false
	}

	trade.Timestamp = timestamp
	trade.Side = side
	trade.Price = price
	trade.Mode = model.TradeModeRecovered

	return trade, true
}

func parseLineTimestamp(line string) (time.Time, bool) {
	candidates := make([]string, 0, 3)
	if head, _, found := strings.Cut(line, "\t"); found {
		candidates = append(candidates, head)
	}
	if head, _, found := strings.Cut(line, " - "); found {
		candidates = append(candidates, head)
	}
	fields := strings.Fields(line)
	if len(fields) > 0 {
		candidates = append(candidates, fields[0])
	}
	if len(fields) > 1 {
		candidates = append(candidates, fields[0]+" "+fields[1])
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		for _, layout := range tradeLogTimeLayouts {
			if timestamp, err := time.Parse(layout, candidate); err == nil {
				return timestamp, true
			}
		}
	}

	return time.Time{}, false
}

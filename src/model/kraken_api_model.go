package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type KrakenResponse struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

func (k KrakenResponse) HasError() bool {
	return len(k.Error) > 0
}

func (k KrakenResponse) GetErrorMessage() string {
	return strings.Join(k.Error, "; ")
}

type KrakenTicker struct {
	Ask  []string `json:"a"`
	Bid  []string `json:"b"`
	Last []string `json:"c"`
}

func (k KrakenTicker) GetLastPrice() (string, error) {
	if len(k.Last) == 0 || k.Last[0] == "" {
		return "", errors.New("ticker has no last trade price")
	}

	return k.Last[0], nil
}

// KrakenOHLCRow is [time, open, high, low, close, vwap, volume, count].
type KrakenOHLCRow []json.RawMessage

func (r KrakenOHLCRow) ToKLine(symbol string, interval string) (KLine, error) {
	var kLine KLine
	if len(r) < 7 {
		return kLine, errors.New(fmt.Sprintf("OHLC row has %d columns, 7 expected", len(r)))
	}

	var openTime int64
	if err := json.Unmarshal(r[0], &openTime); err != nil {
		return kLine, err
	}

	columns := []*Price{&kLine.Open, &kLine.High, &kLine.Low, &kLine.Close}
	for index, column := range columns {
		if err := json.Unmarshal(r[index+1], column); err != nil {
			return kLine, err
		}
	}
	if err := json.Unmarshal(r[6], &kLine.Volume); err != nil {
		return kLine, err
	}

	kLine.Symbol = symbol
	kLine.Interval = interval
	kLine.OpenTime = TimestampMilli(openTime * 1000)

	return kLine, nil
}

type KrakenOrderDescription struct {
	Pair      string `json:"pair"`
	Type      string `json:"type"`
	OrderType string `json:"ordertype"`
	Price     string `json:"price"`
	Order     string `json:"order"`
}

type KrakenAddOrderResult struct {
	Description KrakenOrderDescription `json:"descr"`
	TxId        []string               `json:"txid"`
}

type KrakenCancelOrderResult struct {
	Count   int  `json:"count"`
	Pending bool `json:"pending"`
}

type KrakenOrderInfo struct {
	Status         string                 `json:"status"`
	Description    KrakenOrderDescription `json:"descr"`
	Volume         string                 `json:"vol"`
	VolumeExecuted string                 `json:"vol_exec"`
	Price          string                 `json:"price"`
}

func (k KrakenOrderInfo) ToExchangeOrder(orderId OrderId, symbol string) ExchangeOrder {
	quantity, _ := strconv.ParseFloat(k.Volume, 64)
	executed, _ := strconv.ParseFloat(k.VolumeExecuted, 64)
	price, _ := strconv.ParseFloat(k.Description.Price, 64)

	return ExchangeOrder{
		OrderId:  orderId,
		Symbol:   symbol,
		Status:   k.Status,
		Side:     k.Description.Type,
		Price:    price,
		Quantity: quantity,
		Executed: executed,
	}
}

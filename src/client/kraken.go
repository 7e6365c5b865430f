package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"go.uber.org/zap"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Kraken struct {
	HttpClient      HttpClientInterface
	DSN             string
	ApiKey          string
	ApiSecret       string
	PricePrecision  int32
	VolumePrecision int32
	Formatter       *utils.Formatter
	Logger          *zap.SugaredLogger

	nonceMutex sync.Mutex
	lastNonce  int64
}

func (k *Kraken) GetTicker(symbol string) (decimal.Decimal, error) {
	queryString := fmt.Sprintf("pair=%s", symbol)
	result, err := k.HttpClient.Get(fmt.Sprintf("%s/0/public/Ticker?%s", k.DSN, queryString), map[string]string{})

	if err != nil {
		return decimal.Zero, err
	}

	var tickers map[string]model.KrakenTicker
	if err = k.decode(symbol, "GetTicker", result, &tickers); err != nil {
		return decimal.Zero, err
	}

	for _, ticker := range tickers {
		last, err := ticker.GetLastPrice()
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s", model.ErrExchangeRejected, err.Error())
		}

		return decimal.NewFromString(last)
	}

	return decimal.Zero, fmt.Errorf("%w: ticker for %s is empty", model.ErrExchangeRejected, symbol)
}

func (k *Kraken) GetKLines(symbol string, interval string, limit int64) ([]model.KLine, error) {
	minutes, err := k.Formatter.KrakenInterval(interval)
	if err != nil {
		return nil, err
	}

	queryString := fmt.Sprintf("pair=%s&interval=%d", symbol, minutes)
	result, err := k.HttpClient.Get(fmt.Sprintf("%s/0/public/OHLC?%s", k.DSN, queryString), map[string]string{})

	if err != nil {
		return nil, err
	}

	var ohlc map[string]json.RawMessage
	if err = k.decode(symbol, "GetKLines", result, &ohlc); err != nil {
		return nil, err
	}

	kLines := make([]model.KLine, 0)
	for key, raw := range ohlc {
		if key == "last" {
			continue
		}

		var rows []model.KrakenOHLCRow
		if err = json.Unmarshal(raw, &rows); err != nil {
			k.Logger.Errorf("[%s] GetKLines: %s", symbol, err.Error())
			return nil, err
		}

		for _, row := range rows {
			kLine, err := row.ToKLine(symbol, interval)
			if err != nil {
				k.Logger.Errorf("[%s] GetKLines: %s", symbol, err.Error())
				return nil, err
			}
			kLines = append(kLines, kLine)
		}
	}

	sort.SliceStable(kLines, func(i, j int) bool {
		return kLines[i].OpenTime < kLines[j].OpenTime
	})

	if limit > 0 && int64(len(kLines)) > limit {
		kLines = kLines[int64(len(kLines))-limit:]
	}

	return kLines, nil
}

func (k *Kraken) GetBalances() (map[string]decimal.Decimal, error) {
	result, err := k.privatePost("/0/private/Balance", url.Values{})
	if err != nil {
		return nil, err
	}

	var rawBalances map[string]string
	if err = k.decode("account", "GetBalances", result, &rawBalances); err != nil {
		return nil, err
	}

	balances := make(map[string]decimal.Decimal)
	for asset, rawBalance := range rawBalances {
		balance, err := decimal.NewFromString(rawBalance)
		if err != nil {
			k.Logger.Warnf("[%s] GetBalances: can't parse balance %q", asset, rawBalance)
			continue
		}
		balances[asset] = balance
	}

	return balances, nil
}

func (k *Kraken) LimitOrder(symbol string, side model.OrderSide, quantity decimal.Decimal, price decimal.Decimal) (model.OrderId, error) {
	values := url.Values{}
	values.Set("pair", symbol)
	values.Set("type", string(side))
	values.Set("ordertype", "limit")
	values.Set("volume", quantity.Truncate(k.VolumePrecision).String())
	values.Set("price", price.Round(k.PricePrecision).String())
	values.Set("cl_ord_id", uuid.New().String())

	result, err := k.privatePost("/0/private/AddOrder", values)
	if err != nil {
		return "", err
	}

	var addOrderResult model.KrakenAddOrderResult
	if err = k.decode(symbol, "LimitOrder", result, &addOrderResult); err != nil {
		return "", err
	}

	if len(addOrderResult.TxId) == 0 {
		return "", errors.New(fmt.Sprintf("[%s] order is placed without txid", symbol))
	}

	k.Logger.Infof("[%s] LimitOrder: %s", symbol, addOrderResult.Description.Order)

	return model.OrderId(addOrderResult.TxId[0]), nil
}

func (k *Kraken) CancelOrder(symbol string, orderId model.OrderId) error {
	values := url.Values{}
	values.Set("txid", orderId.String())

	result, err := k.privatePost("/0/private/CancelOrder", values)
	if err != nil {
		return err
	}

	var cancelResult model.KrakenCancelOrderResult
	if err = k.decode(symbol, "CancelOrder", result, &cancelResult); err != nil {
		return err
	}

	if cancelResult.Count == 0 && !cancelResult.Pending {
		return fmt.Errorf("%w: %s", model.ErrOrderNotFound, orderId.String())
	}

	return nil
}

func (k *Kraken) QueryOrder(symbol string, orderId model.OrderId) (model.ExchangeOrder, error) {
	values := url.Values{}
	values.Set("txid", orderId.String())

	var order model.ExchangeOrder
	result, err := k.privatePost("/0/private/QueryOrders", values)
	if err != nil {
		return order, err
	}

	var orders map[string]model.KrakenOrderInfo
	if err = k.decode(symbol, "QueryOrder", result, &orders); err != nil {
		return order, err
	}

	info, ok := orders[orderId.String()]
	if !ok {
		return order, fmt.Errorf("%w: [%s] order %s", model.ErrOrderNotFound, symbol, orderId.String())
	}

	return info.ToExchangeOrder(orderId, symbol), nil
}

func (k *Kraken) GetHeaders(path string, nonce string, payload string) (map[string]string, error) {
	secret, err := base64.StdEncoding.DecodeString(k.ApiSecret)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("API secret is not valid base64: %s", err.Error()))
	}

	hash := sha256.Sum256([]byte(nonce + payload))
	h := hmac.New(sha512.New, secret)
	h.Write(append([]byte(path), hash[:]...))

	return map[string]string{
		"API-Key":      k.ApiKey,
		"API-Sign":     base64.StdEncoding.EncodeToString(h.Sum(nil)),
		"Content-Type": "application/x-www-form-urlencoded; charset=utf-8",
	}, nil
}

func (k *Kraken) privatePost(path string, values url.Values) ([]byte, error) {
	nonce := k.nextNonce()
	values.Set("nonce", nonce)
	payload := values.Encode()

	headers, err := k.GetHeaders(path, nonce, payload)
	if err != nil {
		return nil, err
	}

	return k.HttpClient.Post(fmt.Sprintf("%s%s", k.DSN, path), []byte(payload), headers)
}

// nextNonce is strictly increasing even for calls within the same microsecond.
func (k *Kraken) nextNonce() string {
	k.nonceMutex.Lock()
	defer k.nonceMutex.Unlock()

	nonce := time.Now().UnixMicro()
	if nonce <= k.lastNonce {
		nonce = k.lastNonce + 1
	}
	k.lastNonce = nonce

	return strconv.FormatInt(nonce, 10)
}

func (k *Kraken) decode(symbol string, method string, body []byte, target interface{}) error {
	var response model.KrakenResponse
	err := json.Unmarshal(body, &response)
	if err != nil {
		k.Logger.Errorf("[%s] %s: %s", symbol, method, err.Error())
		return err
	}

	if response.HasError() {
		k.Logger.Errorf("[%s] %s: %s", symbol, method, response.GetErrorMessage())
		return ClassifyKrakenError(response.GetErrorMessage())
	}

	err = json.Unmarshal(response.Result, target)
	if err != nil {
		k.Logger.Errorf("[%s] %s: %s", symbol, method, err.Error())
		return err
	}

	return nil
}

func ClassifyKrakenError(message string) error {
	switch {
	case strings.Contains(message, "Insufficient funds"):
		return fmt.Errorf("%w: %s", model.ErrInsufficientFunds, message)
	case strings.HasPrefix(message, "EService:"),
		strings.Contains(message, "Rate limit"),
		strings.Contains(message, "Invalid nonce"):
		return fmt.Errorf("%w: %s", model.ErrNetwork, message)
	case strings.HasPrefix(message, "E"):
		return fmt.Errorf("%w: %s", model.ErrExchangeRejected, message)
	}

	return errors.New(message)
}

package model

import (
	"github.com/rafacas/sysstats"
)

const DbStatusOk = "ok"
const DbStatusFail = "fail"
const DbStatusDisabled = "disabled"
const RedisStatusOk = "ok"
const RedisStatusFail = "fail"
const RedisStatusDisabled = "disabled"
const ExchangeStatusOk = "ok"
const ExchangeStatusFail = "fail"

type BotHealth struct {
	BotUuid        string            `json:"botUuid"`
	Mode           string            `json:"mode"`
	Symbol         string            `json:"symbol"`
	TradingEnabled bool              `json:"tradingEnabled"`
	DbStatus       string            `json:"dbStatus"`
	RedisStatus    string            `json:"redisStatus"`
	ExchangeStatus string            `json:"exchangeStatus"`
	Cores          int               `json:"cores"`
	Memory         sysstats.MemStats `json:"memory"`
	LoadAvg        sysstats.LoadAvg  `json:"loadAvg"`
	Updates        map[string]string `json:"updates"`
}

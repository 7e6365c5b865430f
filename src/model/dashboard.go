package model

type TradeView struct {
	Time  string `json:"time"`
	Type  string `json:"type"`
	Price string `json:"price"`
	Class string `json:"class"`
}

type DashboardSnapshot struct {
	Symbol          string      `json:"symbol"`
	Mode            string      `json:"mode"`
	QuoteAsset      string      `json:"quoteAsset"`
	BaseAsset       string      `json:"baseAsset"`
	QuoteBalance    string      `json:"quoteBalance"`
	BaseBalance     string      `json:"baseBalance"`
	Baseline        string      `json:"baseline"`
	CurrentPrice    float64     `json:"currentPrice"`
	CurrentRsi      float64     `json:"currentRsi"`
	PnlAbsolute     string      `json:"pnlAbsolute"`
	PnlPercent      string      `json:"pnlPercent"`
	DrawdownPercent string      `json:"drawdownPercent"`
	WithinRiskLimit bool        `json:"withinRiskLimit"`
	TotalFees       string      `json:"totalFees"`
	TradingEnabled  bool        `json:"tradingEnabled"`
	OrderTimeout    int64       `json:"orderTimeout"`
	OpenOrders      int         `json:"openOrders"`
	Trades          []TradeView `json:"trades"`
	Prices          []float64   `json:"prices"`
	Rsis            []float64   `json:"rsis"`
	Timestamps      []string    `json:"timestamps"`
	UpdatedAt       string      `json:"updatedAt"`
}

type ControlResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	TradingEnabled *bool  `json:"tradingEnabled,omitempty"`
	OrderTimeout   *int64 `json:"orderTimeout,omitempty"`
	Baseline       string `json:"baseline,omitempty"`
}

const ControlStatusSuccess = "success"
const ControlStatusError = "error"

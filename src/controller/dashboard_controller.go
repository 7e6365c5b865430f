package controller

import (
	"fmt"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"net/http"
	"strconv"
)

type TradingControlInterface interface {
	Snapshot() model.DashboardSnapshot
	SetTradingEnabled(enabled bool)
	SetOrderTimeout(minutes int64) error
	ResetBaseline() decimal.Decimal
}

type DashboardController struct {
	Engine    TradingControlInterface
	Formatter *utils.Formatter
}

func (d *DashboardController) GetDashboardAction(w http.ResponseWriter, req *http.Request) {
	writeJson(w, http.StatusOK, d.Engine.Snapshot())
}

func (d *DashboardController) SwitchTradingAction(w http.ResponseWriter, req *http.Request) {
	enabled := mux.Vars(req)["enabled"] == "1"
	d.Engine.SetTradingEnabled(enabled)

	writeJson(w, http.StatusOK, model.ControlResponse{
		Status:         model.ControlStatusSuccess,
		TradingEnabled: &enabled,
	})
}

func (d *DashboardController) UpdateOrderTimeoutAction(w http.ResponseWriter, req *http.Request) {
	minutes, err := strconv.ParseInt(mux.Vars(req)["minutes"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid timeout: %s", mux.Vars(req)["minutes"]))

		return
	}

	err = d.Engine.SetOrderTimeout(minutes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	writeJson(w, http.StatusOK, model.ControlResponse{
		Status:       model.ControlStatusSuccess,
		OrderTimeout: &minutes,
	})
}

func (d *DashboardController) ResetBaselineAction(w http.ResponseWriter, req *http.Request) {
	baseline := d.Engine.ResetBaseline()

	writeJson(w, http.StatusOK, model.ControlResponse{
		Status:   model.ControlStatusSuccess,
		Baseline: d.Formatter.FormatQuote(baseline),
	})
}

package controller

import (
	"gitlab.com/open-soft/go-rsi-bot/src/repository"
	"net/http"
	"strconv"
)

const DefaultTradeListLimit = 50
const MaxTradeListLimit = 500

type TradeController struct {
	TradeRepository repository.TradeStorageInterface
}

func (t *TradeController) GetTradeListAction(w http.ResponseWriter, req *http.Request) {
	if t.TradeRepository == nil {
		writeError(w, http.StatusServiceUnavailable, "Trade storage is not configured")

		return
	}

	limit := int64(DefaultTradeListLimit)
	if rawLimit := req.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.ParseInt(rawLimit, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Limit must be a positive integer")

			return
		}
		limit = parsed
	}
	if limit > MaxTradeListLimit {
		limit = MaxTradeListLimit
	}

	list, err := t.TradeRepository.GetList(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJson(w, http.StatusOK, list)
}

package controller

import (
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"net/http"
)

type HealthServiceInterface interface {
	HealthCheck() model.BotHealth
}

type BotController struct {
	HealthService HealthServiceInterface
}

func (b *BotController) GetHealthCheckAction(w http.ResponseWriter, req *http.Request) {
	writeJson(w, http.StatusOK, b.HealthService.HealthCheck())
}

package controller

import (
	"encoding/json"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"net/http"
)

func writeJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")

	encoded, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJson(w, status, model.ControlResponse{
		Status:  model.ControlStatusError,
		Message: message,
	})
}

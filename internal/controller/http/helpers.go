package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// writeJSON - записывает ответ в формате JSON и добавляет заголовок Content-Type: application/json
func writeJSON(w http.ResponseWriter, lg *zap.SugaredLogger, data interface{}, statusCode int) {
	response, err := json.Marshal(data)
	if err != nil {
		if lg != nil {
			lg.Errorf("failed to marshal response: %v", err)
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}

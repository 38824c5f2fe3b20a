package resp

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse - пишет JSON ответ с указанным статусом
func WriteJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

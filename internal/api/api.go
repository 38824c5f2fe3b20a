package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

// WriteError переводит ошибку сервиса в HTTP-статус. Наружу уходит общий
// текст: детали отказов остаются в журнале
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrRateLimited),
		errors.Is(err, model.ErrAnomalyDetected):
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	case errors.Is(err, model.ErrAccountLocked),
		errors.Is(err, model.ErrFraudSuspected):
		http.Error(w, "operation not allowed", http.StatusForbidden)
	case errors.Is(err, model.ErrInvalidWager):
		http.Error(w, "invalid wager", http.StatusBadRequest)
	case errors.Is(err, model.ErrInsufficientFunds):
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	case errors.Is(err, model.ErrCollaboratorUnavailable):
		log.Println("collaborator error:", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	default:
		log.Println("request error:", err)
		http.Error(w, "request failed", http.StatusInternalServerError)
	}
}

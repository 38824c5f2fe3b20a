package model

import "time"

// Типы событий безопасности, уходящих в аудит
const (
	EventRateLimitExceeded = "rate_limit_exceeded"
	EventAccountLocked     = "account_locked"
	EventAccountUnlocked   = "account_unlocked"
	EventAnomalyDetected   = "anomaly_detected"
	EventFraudDetected     = "fraud_detected"
	EventSpinRecorded      = "spin_recorded"
	EventLoginSuccess      = "login_success"
	EventLoginFailed       = "login_failed"
	EventUserRegistered    = "user_registered"
)

// SecurityEvent — явное значение-событие, передаваемое в аудит вместо
// скрытых колбэков. Отправка не влияет на решение по операции.
type SecurityEvent struct {
	Subject     string
	EventType   string
	Description string
	Timestamp   time.Time
}

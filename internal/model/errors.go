package model

import "errors"

// Таксономия отказов ядра. Все отказы возвращаются вызывающему как типизированные
// ошибки и различаются через errors.Is; наружу уходит только общий отказ без деталей.
var (
	// ErrRateLimited — действие отклонено по частоте, состояние аккаунта не меняется
	ErrRateLimited = errors.New("rate limited")
	// ErrAccountLocked — аутентификация отклонена: аккаунт заблокирован
	ErrAccountLocked = errors.New("account locked")
	// ErrAnomalyDetected — действие помечено детектором регулярных интервалов
	ErrAnomalyDetected = errors.New("timing anomaly detected")
	// ErrInsufficientFunds — ставка превышает доступный баланс
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidWager — неположительная или выходящая за политику ставка
	ErrInvalidWager = errors.New("invalid wager")
	// ErrFraudSuspected — платёж заблокирован эвристиками мошенничества
	ErrFraudSuspected = errors.New("fraud suspected")
	// ErrCollaboratorUnavailable — отказал внешний коллаборатор (БД, шлюз);
	// операция не применяется частично и требует ретрая на стороне вызывающего
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

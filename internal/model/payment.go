package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionDeposit = "deposit"
)

type Transaction struct {
	ID          string
	UserID      int
	Amount      decimal.Decimal
	Kind        string
	Description string
	CreatedAt   time.Time
}

// FraudReason — причина срабатывания эвристики (первая сработавшая)
type FraudReason string

const (
	FraudReasonNone              FraudReason = ""
	FraudReasonRapidTransactions FraudReason = "rapid transactions"
	FraudReasonAmountCeiling     FraudReason = "amount exceeds ceiling"
	FraudReasonDailyLimit        FraudReason = "daily limit exceeded"
)

// FraudSignal — вердикт по платёжной операции. Не персистится ядром
type FraudSignal struct {
	IsFraud bool
	Reason  FraudReason
}

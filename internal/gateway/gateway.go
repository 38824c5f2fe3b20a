package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Mock — заглушка платёжного провайдера: всегда подтверждает списание
// и возвращает сгенерированный референс
type Mock struct {
	log *logrus.Logger
}

func NewMock(log *logrus.Logger) *Mock {
	return &Mock{log: log}
}

func (m *Mock) Charge(ctx context.Context, userID int, amount decimal.Decimal) (string, error) {
	ref := fmt.Sprintf("mock-%s", uuid.NewString())

	m.log.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount.String(),
		"ref":     ref,
	}).Info("payment gateway charge")

	return ref, nil
}

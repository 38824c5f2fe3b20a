package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/middleware"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
)

// Deposit проводит пополнение: допуск (лимит частоты, эвристики
// мошенничества), списание у провайдера, затем запись транзакции
// и зачисление баланса в одной транзакции бд
func (s *serv) Deposit(ctx context.Context, amount decimal.Decimal) (int, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return 0, errors.New("amount must be positive")
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}
	subject := strconv.Itoa(userID)

	// Лимит частоты платёжных операций
	if s.limiter.IsLimited(subject, ratelimit.ActionPayment) {
		s.emit(subject, model.EventRateLimitExceeded, "payment rate limit exceeded")
		return 0, model.ErrRateLimited
	}

	// Эвристики мошенничества до обращения к провайдеру
	signal, err := s.heuristics.Evaluate(ctx, userID, amount)
	if err != nil {
		return 0, err
	}
	if signal.IsFraud {
		s.emit(subject, model.EventFraudDetected, string(signal.Reason))
		return 0, model.ErrFraudSuspected
	}

	// Допущенная попытка учитывается в обоих окнах: транспортном
	// и скоростном окне эвристик
	s.limiter.RecordAttempt(subject, ratelimit.ActionPayment)
	s.limiter.RecordAttempt(subject, ratelimit.ActionPaymentVelocity)

	// Списание у внешнего провайдера
	ref, err := s.gateway.Charge(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("%w: payment gateway: %v", model.ErrCollaboratorUnavailable, err)
	}

	var balance int

	// Начало транзакциии
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Запись транзакции
		err := s.paymentRepo.CreateTransaction(txCtx, &model.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Amount:      amount,
			Kind:        model.TransactionDeposit,
			Description: ref,
			CreatedAt:   s.now(),
		})
		if err != nil {
			return err
		}

		// 2. Зачисление баланса в игровых кредитах
		balance, err = s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}
		balance += int(amount.IntPart())
		return s.userRepo.UpdateBalance(txCtx, userID, balance)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: deposit: %v", model.ErrCollaboratorUnavailable, err)
	}

	return balance, nil
}

// GetBalance возвращает текущий баланс пользователя
func (s *serv) GetBalance(ctx context.Context) (int, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}
	return s.userRepo.GetBalance(ctx, userID)
}

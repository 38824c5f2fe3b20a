package spin

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ahmeterdemserceoglu/sloter/internal/middleware"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
)

// Spin выполняет спин: допуск (лимит частоты, детектор автоматизации),
// затем атомарная единица ставки — списание, генерация исхода, оценка
// выплат и зачисление в одной транзакции
func (s *serv) Spin(ctx context.Context, spinReq model.SpinRequest) (*model.SpinResult, error) {
	// Валидация ставки до обращения к генератору
	if spinReq.Bet <= 0 || spinReq.Bet > s.cfg.MaxBet {
		return nil, model.ErrInvalidWager
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}
	subject := strconv.Itoa(userID)

	// Лимит частоты спинов
	if s.limiter.IsLimited(subject, ratelimit.ActionSpin) {
		s.emit(subject, model.EventRateLimitExceeded, "spin rate limit exceeded")
		return nil, model.ErrRateLimited
	}

	// Детектор автоматизации: слишком регулярные интервалы между спинами.
	// Подозрение всегда пишется в журнал, отклонение — только по конфигу
	if s.detector.RecordAndCheck(subject, ratelimit.ActionSpin, s.now()) {
		s.emit(subject, model.EventAnomalyDetected, "suspiciously regular spin intervals")
		if s.cfg.RejectOnAnomaly {
			return nil, model.ErrAnomalyDetected
		}
	}

	s.limiter.RecordAttempt(subject, ratelimit.ActionSpin)

	// Инициализируем структуру для хранения результатов спина
	var res *model.SpinResult

	// Начало транзакции где выполняется процесс спина.
	// Либо применяются все эффекты ставки, либо ни один
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем текущий баланс внутри транзакции
		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}

		// Проверка достаточности средств
		if balance < spinReq.Bet {
			return model.ErrInsufficientFunds
		}

		// Списание ставки
		balance -= spinReq.Bet
		if err := s.userRepo.UpdateBalance(txCtx, userID, balance); err != nil {
			return err
		}

		// Генерация доски и оценка выплат
		grid := s.generator.GenerateGrid(s.cfg.Reels, s.cfg.Rows)
		outcome := s.evaluator.Evaluate(grid, spinReq.Bet)

		// Зачисление выигрыша
		if outcome.TotalPayout > 0 {
			balance += outcome.TotalPayout
			if err := s.userRepo.UpdateBalance(txCtx, userID, balance); err != nil {
				return err
			}
		}

		// Запись исхода в журнал спинов
		if err := s.spinRepo.RecordSpin(txCtx, userID, spinReq.Bet, outcome); err != nil {
			return err
		}

		res = &model.SpinResult{
			Outcome: outcome,
			Balance: balance,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: spin: %v", model.ErrCollaboratorUnavailable, err)
	}

	// Статистика возврата учитывается только для завершённых ставок
	s.ledger.Record(int64(spinReq.Bet), int64(res.Outcome.TotalPayout))

	desc := fmt.Sprintf("bet %d paid %d", spinReq.Bet, res.Outcome.TotalPayout)
	if res.Outcome.IsJackpot {
		desc = "jackpot: " + desc
	}
	s.emit(subject, model.EventSpinRecorded, desc)

	return res, nil
}

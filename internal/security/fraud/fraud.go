package fraud

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
)

// SpendLedger — коллаборатор с учётом дневных трат субъекта
type SpendLedger interface {
	DailySpent(ctx context.Context, userID int, day time.Time) (decimal.Decimal, error)
}

// LimitSource — коллаборатор с персональным дневным лимитом.
// Нулевое значение — лимит не задан
type LimitSource interface {
	DailyLimit(ctx context.Context, userID int) (decimal.Decimal, error)
}

type Config struct {
	// AmountCeiling — абсолютный потолок одной транзакции
	AmountCeiling decimal.Decimal
	// DefaultDailyLimit — глобальный дневной лимит, если персональный не задан
	DefaultDailyLimit decimal.Decimal
}

// Heuristics — эвристики мошенничества по платёжным операциям.
// Три независимые проверки, любой одной достаточно для вердикта; в сигнале
// остаётся первая сработавшая причина
type Heuristics struct {
	limiter *ratelimit.Limiter
	spend   SpendLedger
	limits  LimitSource
	cfg     Config
	now     func() time.Time
}

func New(limiter *ratelimit.Limiter, spend SpendLedger, limits LimitSource, cfg Config) *Heuristics {
	return NewWithClock(limiter, spend, limits, cfg, time.Now)
}

func NewWithClock(limiter *ratelimit.Limiter, spend SpendLedger, limits LimitSource, cfg Config, now func() time.Time) *Heuristics {
	return &Heuristics{
		limiter: limiter,
		spend:   spend,
		limits:  limits,
		cfg:     cfg,
		now:     now,
	}
}

// Evaluate — вердикт по одной платёжной попытке.
// Отказ коллаборатора — это не вердикт о мошенничестве, а отдельная ошибка
func (h *Heuristics) Evaluate(ctx context.Context, userID int, amount decimal.Decimal) (model.FraudSignal, error) {
	subject := strconv.Itoa(userID)

	// 1. Частота транзакций в коротком окне
	if h.limiter.IsLimited(subject, ratelimit.ActionPaymentVelocity) {
		return model.FraudSignal{IsFraud: true, Reason: model.FraudReasonRapidTransactions}, nil
	}

	// 2. Абсолютный потолок суммы — независимо от дневных трат
	if amount.GreaterThan(h.cfg.AmountCeiling) {
		return model.FraudSignal{IsFraud: true, Reason: model.FraudReasonAmountCeiling}, nil
	}

	// 3. Дневной лимит с учётом уже потраченного
	spent, err := h.spend.DailySpent(ctx, userID, h.now())
	if err != nil {
		return model.FraudSignal{}, fmt.Errorf("%w: daily spent lookup: %v", model.ErrCollaboratorUnavailable, err)
	}

	limit, err := h.limits.DailyLimit(ctx, userID)
	if err != nil {
		return model.FraudSignal{}, fmt.Errorf("%w: daily limit lookup: %v", model.ErrCollaboratorUnavailable, err)
	}
	if limit.IsZero() {
		limit = h.cfg.DefaultDailyLimit
	}

	if spent.Add(amount).GreaterThan(limit) {
		return model.FraudSignal{IsFraud: true, Reason: model.FraudReasonDailyLimit}, nil
	}

	return model.FraudSignal{}, nil
}

package payment

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/audit"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/fraud"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
	"github.com/ahmeterdemserceoglu/sloter/internal/service"
)

// Gateway — внешний платёжный провайдер. Возвращает референс проведённого
// платежа либо ошибку
type Gateway interface {
	Charge(ctx context.Context, userID int, amount decimal.Decimal) (ref string, err error)
}

type serv struct {
	txManager   trm.Manager
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	gateway     Gateway

	limiter    *ratelimit.Limiter
	heuristics *fraud.Heuristics
	sink       audit.Sink

	now func() time.Time
}

func NewPaymentService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	gateway Gateway,
	limiter *ratelimit.Limiter,
	heuristics *fraud.Heuristics,
	sink audit.Sink,
) service.PaymentService {
	return &serv{
		txManager:   txManager,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		limiter:     limiter,
		heuristics:  heuristics,
		sink:        sink,
		now:         time.Now,
	}
}

func (s *serv) emit(subject, eventType, description string) {
	s.sink.Emit(model.SecurityEvent{
		Subject:     subject,
		EventType:   eventType,
		Description: description,
		Timestamp:   s.now(),
	})
}

package spin

import (
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/ahmeterdemserceoglu/sloter/internal/engine/payline"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rng"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rtp"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/anomaly"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/audit"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
	"github.com/ahmeterdemserceoglu/sloter/internal/service"
)

type Config struct {
	// Барабаны
	Reels int
	// Ряды
	Rows int
	// Максимальная ставка
	MaxBet int
	// RejectOnAnomaly — отклонять ли спин при подозрении на автоматизацию.
	// По умолчанию подозрение только пишется в журнал
	RejectOnAnomaly bool
}

type serv struct {
	cfg       Config
	txManager trm.Manager
	userRepo  repository.UserRepository
	spinRepo  repository.SpinRepository

	generator *rng.Generator
	evaluator *payline.Evaluator
	ledger    *rtp.Ledger

	limiter  *ratelimit.Limiter
	detector *anomaly.Detector
	sink     audit.Sink

	now func() time.Time
}

func NewSpinService(
	cfg Config,
	txManager trm.Manager,
	userRepo repository.UserRepository,
	spinRepo repository.SpinRepository,
	generator *rng.Generator,
	evaluator *payline.Evaluator,
	ledger *rtp.Ledger,
	limiter *ratelimit.Limiter,
	detector *anomaly.Detector,
	sink audit.Sink,
) service.SpinService {
	return &serv{
		cfg:       cfg,
		txManager: txManager,
		userRepo:  userRepo,
		spinRepo:  spinRepo,
		generator: generator,
		evaluator: evaluator,
		ledger:    ledger,
		limiter:   limiter,
		detector:  detector,
		sink:      sink,
		now:       time.Now,
	}
}

// Stats возвращает агрегированную статистику возврата игроку
func (s *serv) Stats() rtp.Snapshot {
	return s.ledger.Snapshot()
}

// ResetStats обнуляет статистику возврата игроку
func (s *serv) ResetStats() {
	s.ledger.Reset()
}

func (s *serv) emit(subject, eventType, description string) {
	s.sink.Emit(model.SecurityEvent{
		Subject:     subject,
		EventType:   eventType,
		Description: description,
		Timestamp:   s.now(),
	})
}

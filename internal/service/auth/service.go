package auth

import (
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"github.com/ahmeterdemserceoglu/sloter/internal/config"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/audit"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/lockout"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
	"github.com/ahmeterdemserceoglu/sloter/internal/service"
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig

	limiter *ratelimit.Limiter
	lockout *lockout.Machine
	sink    audit.Sink
}

func NewAuthService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
	limiter *ratelimit.Limiter,
	lockoutMachine *lockout.Machine,
	sink audit.Sink,
) service.AuthService {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
		limiter:   limiter,
		lockout:   lockoutMachine,
		sink:      sink,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}

func (s *serv) emit(subject, eventType, description string) {
	s.sink.Emit(model.SecurityEvent{
		Subject:     subject,
		EventType:   eventType,
		Description: description,
		Timestamp:   time.Now(),
	})
}

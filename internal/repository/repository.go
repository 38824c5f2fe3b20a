package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int, error)
	UpdateBalance(ctx context.Context, id int, amount int) error

	// Коллаборатор для машины блокировок
	FailedAttempts(ctx context.Context, id int) (int, error)
	IncrementFailedAttempts(ctx context.Context, id int) (int, error)
	ResetFailedAttempts(ctx context.Context, id int) error
	SetLocked(ctx context.Context, id int, until time.Time) error
	ClearLock(ctx context.Context, id int) error
	LockedUntil(ctx context.Context, id int) (*time.Time, error)

	// Персональный дневной лимит трат; ноль — не задан
	DailyLimit(ctx context.Context, id int) (decimal.Decimal, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type SpinRepository interface {
	RecordSpin(ctx context.Context, userID int, bet int, outcome model.SpinOutcome) error
}

type PaymentRepository interface {
	CreateTransaction(ctx context.Context, trx *model.Transaction) error
	DailySpent(ctx context.Context, userID int, day time.Time) (decimal.Decimal, error)
}

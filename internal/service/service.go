package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rtp"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, user *model.User, ip string) (*model.AuthData, error)
	Login(ctx context.Context, login, password, ip string) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
	Unlock(ctx context.Context, userID int) error
}

type SpinService interface {
	Spin(ctx context.Context, req model.SpinRequest) (*model.SpinResult, error)
	Stats() rtp.Snapshot
	ResetStats()
}

type PaymentService interface {
	Deposit(ctx context.Context, amount decimal.Decimal) (balance int, err error)
	GetBalance(ctx context.Context) (int, error)
}

package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

type User struct {
	ID             int
	Name           string
	Login          string
	Password       string
	Role           string
	Balance        int
	FailedAttempts int
	// LockedUntil — момент, до которого аккаунт заблокирован.
	// nil означает, что блокировки не было
	LockedUntil *time.Time
	// DailyLimit — персональный дневной лимит трат.
	// Нулевое значение — лимит не задан, действует глобальный дефолт
	DailyLimit decimal.Decimal
}

type UserClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}

package config

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/ahmeterdemserceoglu/sloter/internal/engine/payline"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rng"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/anomaly"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/fraud"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/lockout"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

// GameConfig - конфигурация игры: размеры поля, таблица весов, линии и выплаты.
// Всё это данные из config.yaml, меняются без перекомпиляции
type GameConfig interface {
	Reels() int
	Rows() int
	WeightTable() *rng.WeightTable
	Payline() payline.Config
	MaxBet() int
	RTPWindowSize() int
}

// SecurityConfig - пороги и окна всех защитных механизмов
type SecurityConfig interface {
	RateLimits() ratelimit.Config
	Lockout() lockout.Config
	Anomaly() anomaly.Config
	// RejectOnAnomaly - политика реакции на сигнатуру автоматизации:
	// true - отклонять действие, false - пометить и пропустить
	RejectOnAnomaly() bool
	Fraud() fraud.Config
}

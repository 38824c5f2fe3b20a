package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

// AccountStore — коллаборатор, хранящий счётчик неудачных попыток и срок
// блокировки аккаунта. Ядро само не выполняет I/O к хранилищу.
// Инкремент обязан быть атомарным на стороне хранилища, чтобы конкурентные
// неудачные попытки не теряли обновления
type AccountStore interface {
	FailedAttempts(ctx context.Context, userID int) (int, error)
	IncrementFailedAttempts(ctx context.Context, userID int) (int, error)
	ResetFailedAttempts(ctx context.Context, userID int) error
	SetLocked(ctx context.Context, userID int, until time.Time) error
	ClearLock(ctx context.Context, userID int) error
	LockedUntil(ctx context.Context, userID int) (*time.Time, error)
}

type Config struct {
	// MaxAttempts — число неудач, на котором аккаунт блокируется
	MaxAttempts int
	// Duration — длительность блокировки
	Duration time.Duration
}

// Machine — конечный автомат Active/Locked поверх хранилища аккаунтов.
// Разблокировка по истечению срока ленивая: чистая функция от «сейчас»
// и сохранённой метки, без фоновых таймеров
type Machine struct {
	store AccountStore
	cfg   Config
	now   func() time.Time
}

func New(store AccountStore, cfg Config) *Machine {
	return NewWithClock(store, cfg, time.Now)
}

func NewWithClock(store AccountStore, cfg Config, now func() time.Time) *Machine {
	return &Machine{
		store: store,
		cfg:   cfg,
		now:   now,
	}
}

// IsLocked — аккаунт заблокирован, если срок блокировки задан и ещё не прошёл
func (m *Machine) IsLocked(ctx context.Context, userID int) (bool, error) {
	until, err := m.store.LockedUntil(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: locked until lookup: %v", model.ErrCollaboratorUnavailable, err)
	}
	return until != nil && m.now().Before(*until), nil
}

// OnFailure — учёт неудачной аутентификации. При достижении порога аккаунт
// блокируется до now + Duration. Конкурентные пересечения порога идемпотентны:
// каждый пишет срок от своего момента пересечения, побеждает последний —
// срок детерминирован и не накапливается
func (m *Machine) OnFailure(ctx context.Context, userID int) (locked bool, until time.Time, err error) {
	attempts, err := m.store.IncrementFailedAttempts(ctx, userID)
	if err != nil {
		return false, time.Time{}, fmt.Errorf("%w: increment failed attempts: %v", model.ErrCollaboratorUnavailable, err)
	}

	if attempts < m.cfg.MaxAttempts {
		return false, time.Time{}, nil
	}

	until = m.now().Add(m.cfg.Duration)
	if err := m.store.SetLocked(ctx, userID, until); err != nil {
		return false, time.Time{}, fmt.Errorf("%w: set locked: %v", model.ErrCollaboratorUnavailable, err)
	}
	return true, until, nil
}

// OnSuccess — успешная аутентификация из любого состояния сбрасывает счётчик
func (m *Machine) OnSuccess(ctx context.Context, userID int) error {
	if err := m.store.ResetFailedAttempts(ctx, userID); err != nil {
		return fmt.Errorf("%w: reset failed attempts: %v", model.ErrCollaboratorUnavailable, err)
	}
	return nil
}

// Unlock — административная разблокировка: снимает срок и счётчик неудач
func (m *Machine) Unlock(ctx context.Context, userID int) error {
	if err := m.store.ClearLock(ctx, userID); err != nil {
		return fmt.Errorf("%w: clear lock: %v", model.ErrCollaboratorUnavailable, err)
	}
	if err := m.store.ResetFailedAttempts(ctx, userID); err != nil {
		return fmt.Errorf("%w: reset failed attempts: %v", model.ErrCollaboratorUnavailable, err)
	}
	return nil
}

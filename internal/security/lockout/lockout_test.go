package lockout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

type memStore struct {
	mu       sync.Mutex
	attempts map[int]int
	locked   map[int]time.Time
	fail     bool
}

func newMemStore() *memStore {
	return &memStore{
		attempts: make(map[int]int),
		locked:   make(map[int]time.Time),
	}
}

func (s *memStore) FailedAttempts(ctx context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, errors.New("store down")
	}
	return s.attempts[userID], nil
}

func (s *memStore) IncrementFailedAttempts(ctx context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, errors.New("store down")
	}
	s.attempts[userID]++
	return s.attempts[userID], nil
}

func (s *memStore) ResetFailedAttempts(ctx context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("store down")
	}
	s.attempts[userID] = 0
	return nil
}

func (s *memStore) SetLocked(ctx context.Context, userID int, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("store down")
	}
	s.locked[userID] = until
	return nil
}

func (s *memStore) ClearLock(ctx context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("store down")
	}
	delete(s.locked, userID)
	return nil
}

func (s *memStore) LockedUntil(ctx context.Context, userID int) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("store down")
	}
	until, ok := s.locked[userID]
	if !ok {
		return nil, nil
	}
	return &until, nil
}

func testMachine(store AccountStore, now time.Time) *Machine {
	return NewWithClock(store, Config{
		MaxAttempts: 5,
		Duration:    30 * time.Minute,
	}, func() time.Time { return now })
}

func TestMachine_LocksAtThreshold(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := testMachine(store, now)

	for i := 0; i < 4; i++ {
		locked, _, err := m.OnFailure(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if locked {
			t.Fatalf("locked after %d failures, threshold is 5", i+1)
		}
	}

	locked, until, err := m.OnFailure(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !locked {
		t.Fatal("expected lock on fifth failure")
	}
	if want := now.Add(30 * time.Minute); !until.Equal(want) {
		t.Errorf("locked until %v, want %v", until, want)
	}

	isLocked, err := m.IsLocked(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !isLocked {
		t.Error("IsLocked must report the active lock")
	}
}

func TestMachine_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	m := testMachine(store, now)
	for i := 0; i < 5; i++ {
		m.OnFailure(ctx, 1)
	}

	// Тот же стор, часы на 31 минуту позже
	later := testMachine(store, now.Add(31*time.Minute))
	isLocked, err := later.IsLocked(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if isLocked {
		t.Error("expired lock must read as unlocked without any writes")
	}
}

func TestMachine_SuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := testMachine(store, now)

	for i := 0; i < 4; i++ {
		m.OnFailure(ctx, 1)
	}
	if err := m.OnSuccess(ctx, 1); err != nil {
		t.Fatal(err)
	}

	// Счётчик начат заново: ещё 4 неудачи не блокируют
	for i := 0; i < 4; i++ {
		locked, _, err := m.OnFailure(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if locked {
			t.Fatal("counter must restart after a successful authentication")
		}
	}
}

func TestMachine_AdminUnlock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := testMachine(store, now)

	for i := 0; i < 5; i++ {
		m.OnFailure(ctx, 1)
	}
	if err := m.Unlock(ctx, 1); err != nil {
		t.Fatal(err)
	}

	isLocked, err := m.IsLocked(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if isLocked {
		t.Error("admin unlock must clear the lock")
	}
	if n, _ := store.FailedAttempts(ctx, 1); n != 0 {
		t.Errorf("failed attempts = %d after unlock, want 0", n)
	}
}

func TestMachine_StoreFailureWrapped(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.fail = true
	m := testMachine(store, time.Now())

	_, _, err := m.OnFailure(ctx, 1)
	if !errors.Is(err, model.ErrCollaboratorUnavailable) {
		t.Errorf("store failure must surface as collaborator error, got %v", err)
	}
	_, err = m.IsLocked(ctx, 1)
	if !errors.Is(err, model.ErrCollaboratorUnavailable) {
		t.Errorf("store failure must surface as collaborator error, got %v", err)
	}
}

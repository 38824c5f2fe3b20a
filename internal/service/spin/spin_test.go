package spin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/engine/payline"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rng"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rtp"
	"github.com/ahmeterdemserceoglu/sloter/internal/middleware"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/anomaly"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
)

// fakeTxManager выполняет функцию без транзакции: репозитории в тестах
// работают в памяти
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	mu       sync.Mutex
	balances map[int]int
}

func (r *memUserRepo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	return 0, errors.New("not implemented")
}

func (r *memUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *memUserRepo) GetBalance(ctx context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[id]
	if !ok {
		return 0, errors.New("user not found")
	}
	return b, nil
}

func (r *memUserRepo) UpdateBalance(ctx context.Context, id int, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[id] = amount
	return nil
}

func (r *memUserRepo) FailedAttempts(ctx context.Context, id int) (int, error) { return 0, nil }
func (r *memUserRepo) IncrementFailedAttempts(ctx context.Context, id int) (int, error) {
	return 0, nil
}
func (r *memUserRepo) ResetFailedAttempts(ctx context.Context, id int) error        { return nil }
func (r *memUserRepo) SetLocked(ctx context.Context, id int, until time.Time) error { return nil }
func (r *memUserRepo) ClearLock(ctx context.Context, id int) error                  { return nil }
func (r *memUserRepo) LockedUntil(ctx context.Context, id int) (*time.Time, error)  { return nil, nil }
func (r *memUserRepo) DailyLimit(ctx context.Context, id int) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type memSpinRepo struct {
	mu    sync.Mutex
	spins []model.SpinOutcome
}

func (r *memSpinRepo) RecordSpin(ctx context.Context, userID int, bet int, outcome model.SpinOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spins = append(r.spins, outcome)
	return nil
}

type nopSink struct{}

func (nopSink) Emit(model.SecurityEvent) {}

func testService(t *testing.T, balance int, cfg Config, limiterCfg ratelimit.Config, anomalyCfg anomaly.Config) (*serv, *memUserRepo, *memSpinRepo, *rtp.Ledger) {
	t.Helper()

	table, err := rng.NewWeightTable([]rng.SymbolWeight{
		{Symbol: "CHERRY", Weight: 700},
		{Symbol: "SEVEN", Weight: 250},
		{Symbol: "WILD", Weight: 40},
		{Symbol: "SCATTER", Weight: 10},
	}, 1000)
	if err != nil {
		t.Fatal(err)
	}

	userRepo := &memUserRepo{balances: map[int]int{1: balance}}
	spinRepo := &memSpinRepo{}
	ledger := rtp.NewLedger(100)

	s := NewSpinService(
		cfg,
		fakeTxManager{},
		userRepo,
		spinRepo,
		rng.NewGenerator(table, rng.NewSeededSource(42)),
		payline.NewEvaluator(payline.Config{
			Wild:        "WILD",
			Scatter:     "SCATTER",
			MinRun:      3,
			ScatterMin:  3,
			ScatterRate: 2,
			Paytable: map[string]map[int]int{
				"CHERRY": {3: 20, 4: 50, 5: 100},
				"SEVEN":  {3: 100, 4: 300, 5: 700},
			},
			Patterns: [][]int{{1, 1, 1, 1, 1}, {0, 0, 0, 0, 0}, {2, 2, 2, 2, 2}},
		}),
		ledger,
		ratelimit.New(limiterCfg),
		anomaly.New(anomalyCfg),
		nopSink{},
	).(*serv)

	return s, userRepo, spinRepo, ledger
}

func defaultCfg() Config {
	return Config{Reels: 5, Rows: 3, MaxBet: 1000}
}

func looseLimits() ratelimit.Config {
	return ratelimit.Config{Default: ratelimit.Policy{Limit: 100000, Window: time.Minute}}
}

func looseAnomaly() anomaly.Config {
	return anomaly.Config{MaxSamples: 100, MinSamples: 100000, Tolerance: time.Millisecond, RegularRatio: 0.8}
}

func TestSpin_InvalidWager(t *testing.T) {
	s, _, _, _ := testService(t, 1000, defaultCfg(), looseLimits(), looseAnomaly())
	ctx := middleware.WithUserID(context.Background(), 1)

	for _, bet := range []int{0, -5, 1001} {
		_, err := s.Spin(ctx, model.SpinRequest{Bet: bet})
		if !errors.Is(err, model.ErrInvalidWager) {
			t.Errorf("bet %d: expected invalid wager, got %v", bet, err)
		}
	}
}

func TestSpin_NoUserInContext(t *testing.T) {
	s, _, _, _ := testService(t, 1000, defaultCfg(), looseLimits(), looseAnomaly())

	_, err := s.Spin(context.Background(), model.SpinRequest{Bet: 10})
	if err == nil {
		t.Fatal("expected error without user in context")
	}
}

func TestSpin_InsufficientFunds(t *testing.T) {
	s, userRepo, spinRepo, ledger := testService(t, 5, defaultCfg(), looseLimits(), looseAnomaly())
	ctx := middleware.WithUserID(context.Background(), 1)

	_, err := s.Spin(ctx, model.SpinRequest{Bet: 10})
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	// Отклонённая ставка не оставляет следов
	if b, _ := userRepo.GetBalance(ctx, 1); b != 5 {
		t.Errorf("balance changed to %d on rejected wager", b)
	}
	if len(spinRepo.spins) != 0 {
		t.Error("rejected wager must not be recorded")
	}
	if ledger.Snapshot().SpinCount != 0 {
		t.Error("rejected wager must not reach the stats ledger")
	}
}

func TestSpin_BalanceConsistent(t *testing.T) {
	s, userRepo, spinRepo, ledger := testService(t, 10000, defaultCfg(), looseLimits(), looseAnomaly())
	ctx := middleware.WithUserID(context.Background(), 1)

	res, err := s.Spin(ctx, model.SpinRequest{Bet: 100})
	if err != nil {
		t.Fatal(err)
	}

	want := 10000 - 100 + res.Outcome.TotalPayout
	if res.Balance != want {
		t.Errorf("result balance = %d, want %d", res.Balance, want)
	}
	if b, _ := userRepo.GetBalance(ctx, 1); b != want {
		t.Errorf("stored balance = %d, want %d", b, want)
	}
	if len(spinRepo.spins) != 1 {
		t.Fatalf("recorded %d spins, want 1", len(spinRepo.spins))
	}

	snap := ledger.Snapshot()
	if snap.SpinCount != 1 || snap.TotalWagered != 100 {
		t.Errorf("ledger snapshot = %+v", snap)
	}
	if snap.TotalWon != int64(res.Outcome.TotalPayout) {
		t.Errorf("ledger won = %d, outcome payout = %d", snap.TotalWon, res.Outcome.TotalPayout)
	}
}

func TestSpin_RateLimited(t *testing.T) {
	limits := ratelimit.Config{
		Policies: map[string]ratelimit.Policy{
			ratelimit.ActionSpin: {Limit: 3, Window: time.Minute},
		},
		Default: ratelimit.Policy{Limit: 100000, Window: time.Minute},
	}
	s, userRepo, _, _ := testService(t, 100000, defaultCfg(), limits, looseAnomaly())
	ctx := middleware.WithUserID(context.Background(), 1)

	for i := 0; i < 3; i++ {
		if _, err := s.Spin(ctx, model.SpinRequest{Bet: 10}); err != nil {
			t.Fatalf("spin %d: %v", i, err)
		}
	}

	before, _ := userRepo.GetBalance(ctx, 1)
	_, err := s.Spin(ctx, model.SpinRequest{Bet: 10})
	if !errors.Is(err, model.ErrRateLimited) {
		t.Fatalf("expected rate limit on fourth spin, got %v", err)
	}
	if after, _ := userRepo.GetBalance(ctx, 1); after != before {
		t.Error("rate limited spin must not touch the balance")
	}
}

func TestSpin_AnomalyRejected(t *testing.T) {
	cfg := defaultCfg()
	cfg.RejectOnAnomaly = true
	// Реальные интервалы цикла укладываются в допуск: история выглядит ровной
	anomalyCfg := anomaly.Config{MaxSamples: 100, MinSamples: 3, Tolerance: time.Second, RegularRatio: 0.5}

	s, _, _, _ := testService(t, 100000, cfg, looseLimits(), anomalyCfg)
	ctx := middleware.WithUserID(context.Background(), 1)

	var got error
	for i := 0; i < 10; i++ {
		if _, err := s.Spin(ctx, model.SpinRequest{Bet: 10}); err != nil {
			got = err
			break
		}
	}
	if !errors.Is(got, model.ErrAnomalyDetected) {
		t.Fatalf("expected anomaly rejection, got %v", got)
	}
}

func TestStats_ResetClearsLedger(t *testing.T) {
	s, _, _, _ := testService(t, 100000, defaultCfg(), looseLimits(), looseAnomaly())
	ctx := middleware.WithUserID(context.Background(), 1)

	if _, err := s.Spin(ctx, model.SpinRequest{Bet: 10}); err != nil {
		t.Fatal(err)
	}
	if s.Stats().SpinCount != 1 {
		t.Fatalf("stats spin count = %d, want 1", s.Stats().SpinCount)
	}

	s.ResetStats()
	if s.Stats().SpinCount != 0 {
		t.Error("reset must zero the stats")
	}
}

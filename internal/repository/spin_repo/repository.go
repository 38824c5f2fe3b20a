package spin_repo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository"
)

const (
	table           = "spins"
	colUserID       = "user_id"
	colBet          = "bet"
	colPayout       = "payout"
	colScatterCount = "scatter_count"
	colIsBonus      = "is_bonus"
	colIsJackpot    = "is_jackpot"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSpinRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.SpinRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// RecordSpin - записывает исход спина в историю. Вызывается внутри той же
// транзакции, что и списание/зачисление баланса: снаружи нельзя увидеть
// списанную ставку без записанного исхода
func (r *repo) RecordSpin(ctx context.Context, userID int, bet int, outcome model.SpinOutcome) error {
	query := sq.Insert(table).
		Columns(colUserID, colBet, colPayout, colScatterCount, colIsBonus, colIsJackpot).
		Values(userID, bet, outcome.TotalPayout, outcome.ScatterCount, outcome.IsBonus, outcome.IsJackpot).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

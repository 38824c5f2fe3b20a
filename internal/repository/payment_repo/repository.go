package payment_repo

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository"
)

const (
	table          = "transactions"
	colID          = "transaction_id"
	colUserID      = "user_id"
	colAmount      = "amount"
	colKind        = "kind"
	colDescription = "description"
	colCreatedAt   = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPaymentRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.PaymentRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateTransaction - записывает платёжную операцию
func (r *repo) CreateTransaction(ctx context.Context, trx *model.Transaction) error {
	query := sq.Insert(table).
		Columns(colID, colUserID, colAmount, colKind, colDescription, colCreatedAt).
		Values(trx.ID, trx.UserID, trx.Amount, trx.Kind, trx.Description, trx.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// DailySpent - сумма трат пользователя за календарные сутки дня day (UTC)
func (r *repo) DailySpent(ctx context.Context, userID int, day time.Time) (decimal.Decimal, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := sq.Select("COALESCE(SUM(" + colAmount + "), 0)").
		From(table).
		Where(sq.Eq{colUserID: userID}).
		Where(sq.GtOrEq{colCreatedAt: dayStart}).
		Where(sq.Lt{colCreatedAt: dayEnd}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var spent decimal.Decimal
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&spent)
	if err != nil {
		return decimal.Zero, err
	}

	return spent, nil
}

package user_repo

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
	table             = "users"
	colID             = "id"
	colName           = "name"
	colLogin          = "login"
	colPasswordHash   = "password_hash"
	colRole           = "role"
	colBalance        = "balance"
	colFailedAttempts = "failed_attempts"
	colLockedUntil    = "locked_until"
	colDailyLimit     = "daily_limit"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateUser - создает нового пользователя в БД.
// Возвращает ID созданного пользователя
func (r *repo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	query := sq.Insert(table).
		Columns(colName, colLogin, colPasswordHash, colRole, colBalance, colDailyLimit).
		Values(user.Name, user.Login, user.Password, user.Role, user.Balance, user.DailyLimit).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetUserByLogin - возвращает модель пользователя по его логину
func (r *repo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	query := sq.Select(colID, colName, colLogin, colPasswordHash, colRole, colBalance,
		colFailedAttempts, colLockedUntil, colDailyLimit).
		From(table).
		Where(sq.Eq{colLogin: login}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&user.ID, &user.Name, &user.Login, &user.Password, &user.Role, &user.Balance,
		&user.FailedAttempts, &user.LockedUntil, &user.DailyLimit)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetBalance - получение баланса пользователя по его ID
func (r *repo) GetBalance(ctx context.Context, id int) (int, error) {
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// UpdateBalance - обновляет баланс пользователя
func (r *repo) UpdateBalance(ctx context.Context, id int, amount int) error {
	query := sq.Update(table).
		Set(colBalance, amount).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

func (r *repo) FailedAttempts(ctx context.Context, id int) (int, error) {
	query := sq.Select(colFailedAttempts).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// IncrementFailedAttempts - атомарный инкремент счётчика неудачных попыток.
// Инкремент выполняется на стороне БД, чтобы конкурентные неудачные логины
// не теряли обновления
func (r *repo) IncrementFailedAttempts(ctx context.Context, id int) (int, error) {
	query := sq.Update(table).
		Set(colFailedAttempts, sq.Expr(colFailedAttempts+" + 1")).
		Where(sq.Eq{colID: id}).
		Suffix("RETURNING " + colFailedAttempts).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repo) ResetFailedAttempts(ctx context.Context, id int) error {
	query := sq.Update(table).
		Set(colFailedAttempts, 0).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

func (r *repo) SetLocked(ctx context.Context, id int, until time.Time) error {
	query := sq.Update(table).
		Set(colLockedUntil, until).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

func (r *repo) ClearLock(ctx context.Context, id int) error {
	query := sq.Update(table).
		Set(colLockedUntil, nil).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

func (r *repo) LockedUntil(ctx context.Context, id int) (*time.Time, error) {
	query := sq.Select(colLockedUntil).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var until *time.Time
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&until)
	if err != nil {
		return nil, err
	}

	return until, nil
}

// DailyLimit - персональный дневной лимит трат пользователя.
// Возвращает ноль, если лимит не задан
func (r *repo) DailyLimit(ctx context.Context, id int) (decimal.Decimal, error) {
	query := sq.Select(colDailyLimit).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var limit decimal.NullDecimal
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&limit)
	if err != nil {
		return decimal.Zero, err
	}
	if !limit.Valid {
		return decimal.Zero, nil
	}

	return limit.Decimal, nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories need. pgxmock's
// pool interface satisfies it as well, which keeps repository tests off a
// live database.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ErrInsufficientStock is returned when a stock-out or transfer asks for more
// quantity than the source row holds.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrSameGodownTransfer is returned when source and destination godowns match.
var ErrSameGodownTransfer = errors.New("source and destination godown must differ")

package xpgx

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool runs squirrel builders against postgres.
type Pool interface {
	Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error)
	Queryx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

type pool struct {
	*pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err = p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}
	return &pool{p}, nil
}

func (p *pool) Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}
	return p.Pool.Exec(ctx, sql, args...)
}

func (p *pool) Queryx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}
	return p.Pool.Query(ctx, sql, args...)
}

// Getx scans exactly one row into T by db tags. No rows gives pgx.ErrNoRows.
func Getx[T any](ctx context.Context, p Pool, sqlizer squirrel.Sqlizer) (*T, error) {
	rows, err := p.Queryx(ctx, sqlizer)
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

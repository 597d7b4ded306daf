package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Conn is the subset of pgx query methods shared by pools and transactions.
// Repositories run against the pool by default and against the transaction
// when one is carried in the context.
type Conn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type contextKey string

const connKey contextKey = "db_conn"

// WithTx runs fn inside a single transaction and makes the transaction
// available to repositories via ConnFromContext. This is the atomic
// check-then-act unit the booking path depends on: availability query and
// insert either commit together or not at all.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, connKey, Conn(tx))
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ConnFromContext retrieves the transaction-scoped connection, if any.
func ConnFromContext(ctx context.Context) Conn {
	conn, _ := ctx.Value(connKey).(Conn)
	return conn
}

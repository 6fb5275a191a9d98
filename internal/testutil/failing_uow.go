package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calebmorris/pacer/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork that makes the Nth write inside a
// transaction fail with Err. Log-minutes and plan-day both bundle several
// writes into one transaction; failing a chosen write lets tests assert
// that the earlier ones rolled back.
//
// Writes (ExecContext) are counted from 1. Reads pass through untouched.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, &execCounter{tx: tx, failOn: u.FailOn, err: u.Err}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type execCounter struct {
	tx     *sql.Tx
	execs  int32
	failOn int32
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.execs++
	if c.execs == c.failOn {
		return nil, c.err
	}
	return c.tx.ExecContext(ctx, query, args...)
}

func (c *execCounter) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.tx.QueryContext(ctx, query, args...)
}

func (c *execCounter) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return c.tx.QueryRowContext(ctx, query, args...)
}

package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/neuroplan/internal/db"
)

// FailingUoW runs fn in a real transaction and fails the Nth write
// statement with Err. Writes are INSERT, UPDATE and DELETE statements sent
// through ExecContext or QueryRowContext (INSERT ... RETURNING), counted from 1.
// Reads pass through.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		if wrapped.tripped.Load() && !errors.Is(fnErr, u.Err) {
			return errors.Join(u.Err, fnErr)
		}
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	writes  atomic.Int32
	tripped atomic.Bool
	failOn  int32
	err     error
}

func (f *failingTx) fail(query string) bool {
	if !isWrite(query) || f.writes.Add(1) != f.failOn {
		return false
	}
	f.tripped.Store(true)
	return true
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.fail(query) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *failingTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if f.fail(query) {
		// sql.Row cannot be built with an error; a cancelled context makes
		// Scan fail without running the statement.
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		return f.DBTX.QueryRowContext(cancelled, query, args...)
	}
	return f.DBTX.QueryRowContext(ctx, query, args...)
}

func isWrite(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	for _, verb := range []string{"INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(q, verb) {
			return true
		}
	}
	return false
}

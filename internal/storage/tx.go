package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the slice of database/sql shared by *sql.DB and *sql.Tx.
// Repos hold one, so the same queries run standalone or, rebound via
// InTx, inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn, and commits; any error from fn
// rolls everything back. Multi-row updates (check-in payouts, recurrence
// spawns) go through here so a failed write never leaves a half-paid day
// behind.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

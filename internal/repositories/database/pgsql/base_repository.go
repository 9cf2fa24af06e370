package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the pool and the database transaction helpers shared by the pgsql stores.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin database transaction", err)
	}
	return tx, nil
}

// Commit commits a database transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit database transaction", err)
	}
	return nil
}

// Rollback aborts tx. It is a no-op once tx has been committed.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "failed to roll back database transaction", err)
}

// withTableLock runs fn in a database transaction holding an EXCLUSIVE lock on table.
// Readers are not blocked; concurrent writers wait, so fn sees a stable max(id).
// fn's error aborts the transaction.
func (r *BaseRepository) withTableLock(ctx context.Context, table string, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, "LOCK TABLE "+pgx.Identifier{table}.Sanitize()+" IN EXCLUSIVE MODE"); err != nil {
		return fmt.Errorf("failed to lock %s: %w", table, err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

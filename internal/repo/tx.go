package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// beginner is satisfied by *pgxpool.Pool, pgx.Conn and pgx.Tx. Passing a
// pgx.Tx makes WithinTx open a savepoint, which is how the integration tests
// keep import runs inside their own rollback-only transaction.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager runs a unit of work inside a single transaction.
type TxManager struct {
	db beginner
}

// NewTxManager constructs a TxManager. In production pass *pgxpool.Pool.
func NewTxManager(db beginner) *TxManager {
	return &TxManager{db: db}
}

// WithinTx begins a transaction, hands fn a Store bound to it, and commits
// only if fn returns nil. Every other exit path (error, panic, cancelled
// context) rolls back.
func (m *TxManager) WithinTx(ctx context.Context, fn func(Store) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxManager.WithinTx: begin: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if err := fn(NewStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxManager.WithinTx: commit: %w", err)
	}
	return nil
}

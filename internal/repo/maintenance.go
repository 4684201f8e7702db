package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// importLockKey identifies the advisory lock held by an import run.
// Arbitrary, but must be the same for every process touching these tables.
const importLockKey int64 = 0x6c696e6561 // "linea"

// MaintenanceRepo holds whole-table operations used by the import pipeline.
type MaintenanceRepo interface {
	// LockImport blocks until no other import transaction holds the lock.
	// The lock is released when the enclosing transaction ends, so it must be
	// called inside one.
	LockImport(ctx context.Context) error

	// Reset deletes every row of the network tables in reverse dependency
	// order: route_points, routes, points, lines.
	Reset(ctx context.Context) error
}

type pgMaintenanceRepo struct {
	db db
}

// NewMaintenanceRepo constructs a MaintenanceRepo backed by the provided db connection.
func NewMaintenanceRepo(db db) MaintenanceRepo {
	return &pgMaintenanceRepo{db: db}
}

func (r *pgMaintenanceRepo) LockImport(ctx context.Context) error {
	const q = `SELECT pg_advisory_xact_lock(@key)`
	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": importLockKey}); err != nil {
		return fmt.Errorf("repo.MaintenanceRepo.LockImport: %w", err)
	}
	return nil
}

// resetOrder lists tables children-first so foreign keys are never violated.
var resetOrder = []string{"route_points", "routes", "points", "lines"}

func (r *pgMaintenanceRepo) Reset(ctx context.Context) error {
	for _, table := range resetOrder {
		q := "DELETE FROM " + pgx.Identifier{table}.Sanitize()
		if _, err := r.db.Exec(ctx, q); err != nil {
			return fmt.Errorf("repo.MaintenanceRepo.Reset: %s: %w", table, err)
		}
	}
	return nil
}

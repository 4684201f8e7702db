// Package repo contains all database access logic for linea.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Store groups every repo bound to the same connection or transaction.
type Store struct {
	Lines       LineRepo
	Points      PointRepo
	Routes      RouteRepo
	RoutePoints RoutePointRepo
	Maintenance MaintenanceRepo
}

// NewStore builds a Store whose repos all run against db.
func NewStore(db db) Store {
	return Store{
		Lines:       NewLineRepo(db),
		Points:      NewPointRepo(db),
		Routes:      NewRouteRepo(db),
		RoutePoints: NewRoutePointRepo(db),
		Maintenance: NewMaintenanceRepo(db),
	}
}

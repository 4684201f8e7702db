package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lineamx/linea/internal/domain"
)

// LineRepo defines the persistence operations for Lines.
type LineRepo interface {
	// Create inserts a new line and returns it with its DB-generated id.
	Create(ctx context.Context, line domain.Line) (domain.Line, error)

	// List returns all lines ordered by id.
	List(ctx context.Context) ([]domain.Line, error)
}

// pgLineRepo is the Postgres implementation of LineRepo.
type pgLineRepo struct {
	db db
}

// NewLineRepo constructs a LineRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLineRepo(db db) LineRepo {
	return &pgLineRepo{db: db}
}

// Create inserts a line row and returns the persisted record.
func (r *pgLineRepo) Create(ctx context.Context, line domain.Line) (domain.Line, error) {
	const q = `
		INSERT INTO lines (name, color)
		VALUES (@name, @color)
		RETURNING id, name, color`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": line.Name, "color": line.Color})
	result, err := scanLine(row)
	if err != nil {
		return domain.Line{}, fmt.Errorf("repo.LineRepo.Create: %w", err)
	}
	return result, nil
}

// List returns every line. The read API does not promise an order; id order
// keeps responses stable between calls.
func (r *pgLineRepo) List(ctx context.Context) ([]domain.Line, error) {
	const q = `SELECT id, name, color FROM lines ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LineRepo.List: %w", err)
	}
	defer rows.Close()

	lines := []domain.Line{}
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LineRepo.List: scan: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LineRepo.List: rows: %w", err)
	}
	return lines, nil
}

func scanLine(s scanner) (domain.Line, error) {
	var l domain.Line
	if err := s.Scan(&l.ID, &l.Name, &l.Color); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Line{}, domain.ErrNotFound
		}
		return domain.Line{}, err
	}
	return l, nil
}

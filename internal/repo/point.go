package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lineamx/linea/internal/domain"
)

// PointRepo defines the persistence operations for Points.
type PointRepo interface {
	// Create inserts a new point and returns it with its DB-generated id.
	// An empty description is stored as NULL.
	Create(ctx context.Context, point domain.Point) (domain.Point, error)
}

type pgPointRepo struct {
	db db
}

// NewPointRepo constructs a PointRepo backed by the provided db connection.
func NewPointRepo(db db) PointRepo {
	return &pgPointRepo{db: db}
}

func (r *pgPointRepo) Create(ctx context.Context, point domain.Point) (domain.Point, error) {
	const q = `
		INSERT INTO points (latitude, longitude, description)
		VALUES (@latitude, @longitude, @description)
		RETURNING id, latitude, longitude, description`

	args := pgx.NamedArgs{
		"latitude":    point.Latitude,
		"longitude":   point.Longitude,
		"description": pgtype.Text{String: point.Description, Valid: point.Description != ""},
	}

	var (
		p    domain.Point
		desc pgtype.Text
	)
	err := r.db.QueryRow(ctx, q, args).Scan(&p.ID, &p.Latitude, &p.Longitude, &desc)
	if err != nil {
		return domain.Point{}, fmt.Errorf("repo.PointRepo.Create: %w", err)
	}
	p.Description = desc.String
	return p, nil
}

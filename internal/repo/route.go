package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lineamx/linea/internal/domain"
)

// RouteRepo defines the persistence operations for Routes.
type RouteRepo interface {
	// Create inserts a new route and returns it with its DB-generated id.
	// Fails if (line_id, route_number) already exists.
	Create(ctx context.Context, route domain.Route) (domain.Route, error)

	// ListSummaries returns every route joined with its line, ordered by route id.
	// When lineID is non-nil only routes of that line are returned.
	ListSummaries(ctx context.Context, lineID *int64) ([]domain.RouteSummary, error)

	// GetSummary returns a single route joined with its line.
	// Returns domain.ErrNotFound if no route with that id exists.
	GetSummary(ctx context.Context, id int64) (domain.RouteSummary, error)
}

type pgRouteRepo struct {
	db db
}

// NewRouteRepo constructs a RouteRepo backed by the provided db connection.
func NewRouteRepo(db db) RouteRepo {
	return &pgRouteRepo{db: db}
}

func (r *pgRouteRepo) Create(ctx context.Context, route domain.Route) (domain.Route, error) {
	const q = `
		INSERT INTO routes (line_id, route_number, description, distance, duration)
		VALUES (@line_id, @route_number, @description, @distance, @duration)
		RETURNING id, line_id, route_number, description, distance, duration`

	args := pgx.NamedArgs{
		"line_id":      route.LineID,
		"route_number": route.Number,
		"description":  route.Description,
		"distance":     route.Distance,
		"duration":     route.Duration,
	}

	var out domain.Route
	err := r.db.QueryRow(ctx, q, args).Scan(
		&out.ID, &out.LineID, &out.Number, &out.Description, &out.Distance, &out.Duration,
	)
	if err != nil {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.Create: %w", err)
	}
	return out, nil
}

// ListSummaries uses a single join so the line fields cost no extra round-trip.
func (r *pgRouteRepo) ListSummaries(ctx context.Context, lineID *int64) ([]domain.RouteSummary, error) {
	const q = `
		SELECT r.id, l.id, l.name, r.description, l.color
		FROM routes r
		JOIN lines l ON l.id = r.line_id
		WHERE @line_id::bigint IS NULL OR r.line_id = @line_id::bigint
		ORDER BY r.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"line_id": lineID})
	if err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.ListSummaries: %w", err)
	}
	defer rows.Close()

	out := []domain.RouteSummary{}
	for rows.Next() {
		s, err := scanRouteSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RouteRepo.ListSummaries: scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.ListSummaries: rows: %w", err)
	}
	return out, nil
}

func (r *pgRouteRepo) GetSummary(ctx context.Context, id int64) (domain.RouteSummary, error) {
	const q = `
		SELECT r.id, l.id, l.name, r.description, l.color
		FROM routes r
		JOIN lines l ON l.id = r.line_id
		WHERE r.id = @id`

	s, err := scanRouteSummary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("repo.RouteRepo.GetSummary: %w", err)
	}
	return s, nil
}

func scanRouteSummary(s scanner) (domain.RouteSummary, error) {
	var rs domain.RouteSummary
	if err := s.Scan(&rs.RouteID, &rs.LineID, &rs.LineName, &rs.Description, &rs.Color); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RouteSummary{}, domain.ErrNotFound
		}
		return domain.RouteSummary{}, err
	}
	return rs, nil
}

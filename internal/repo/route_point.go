package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lineamx/linea/internal/domain"
)

// routePointColumns is the COPY column order; keep in sync with copyRow.
var routePointColumns = []string{
	"route_id", "point_id", "seq", "latitude", "longitude", "distance", "duration",
}

// RoutePointRepo defines the persistence operations for RoutePoints.
type RoutePointRepo interface {
	// BulkInsert writes all points in one COPY operation and returns the
	// number of rows written. IDs of the inputs are ignored.
	BulkInsert(ctx context.Context, points []domain.RoutePoint) (int64, error)

	// ListByRouteIDs returns the points of every given route, ordered by
	// route_id then seq. One query regardless of len(routeIDs).
	ListByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.RoutePoint, error)
}

type pgRoutePointRepo struct {
	db db
}

// NewRoutePointRepo constructs a RoutePointRepo backed by the provided db connection.
func NewRoutePointRepo(db db) RoutePointRepo {
	return &pgRoutePointRepo{db: db}
}

func (r *pgRoutePointRepo) BulkInsert(ctx context.Context, points []domain.RoutePoint) (int64, error) {
	if len(points) == 0 {
		return 0, nil
	}
	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"route_points"},
		routePointColumns,
		pgx.CopyFromSlice(len(points), func(i int) ([]any, error) {
			return copyRow(points[i]), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repo.RoutePointRepo.BulkInsert: %w", err)
	}
	return n, nil
}

func copyRow(p domain.RoutePoint) []any {
	return []any{p.RouteID, p.PointID, int32(p.Seq), p.Latitude, p.Longitude, p.Distance, p.Duration}
}

func (r *pgRoutePointRepo) ListByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.RoutePoint, error) {
	out := []domain.RoutePoint{}
	if len(routeIDs) == 0 {
		return out, nil
	}

	const q = `
		SELECT id, route_id, point_id, seq, latitude, longitude, distance, duration
		FROM route_points
		WHERE route_id = ANY(@route_ids)
		ORDER BY route_id, seq`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"route_ids": routeIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.RoutePointRepo.ListByRouteIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.RoutePoint
		if err := rows.Scan(&p.ID, &p.RouteID, &p.PointID, &p.Seq,
			&p.Latitude, &p.Longitude, &p.Distance, &p.Duration); err != nil {
			return nil, fmt.Errorf("repo.RoutePointRepo.ListByRouteIDs: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RoutePointRepo.ListByRouteIDs: rows: %w", err)
	}
	return out, nil
}

package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/repo"
)

// GeometryService builds the route geometries shown on the map.
// Every call costs exactly two queries: one for the routes and their lines,
// one for all of their waypoints.
type GeometryService struct {
	routes      repo.RouteRepo
	routePoints repo.RoutePointRepo
}

// NewGeometryService constructs a GeometryService backed by the provided repos.
func NewGeometryService(routes repo.RouteRepo, routePoints repo.RoutePointRepo) *GeometryService {
	return &GeometryService{routes: routes, routePoints: routePoints}
}

// ListRouteGeometries returns one geometry per stored route, in route id
// order. When lineID is non-nil only that line's routes are included; an
// unknown line yields an empty list.
func (s *GeometryService) ListRouteGeometries(ctx context.Context, lineID *int64) ([]domain.RouteGeometry, error) {
	summaries, err := s.routes.ListSummaries(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("service.GeometryService.ListRouteGeometries: %w", err)
	}
	out, err := s.assemble(ctx, summaries)
	if err != nil {
		return nil, fmt.Errorf("service.GeometryService.ListRouteGeometries: %w", err)
	}
	return out, nil
}

// GetRouteGeometry returns the geometry of a single route.
// Returns domain.ErrNotFound if no route with that id exists.
func (s *GeometryService) GetRouteGeometry(ctx context.Context, id int64) (domain.RouteGeometry, error) {
	summary, err := s.routes.GetSummary(ctx, id)
	if err != nil {
		return domain.RouteGeometry{}, fmt.Errorf("service.GeometryService.GetRouteGeometry: %w", err)
	}
	out, err := s.assemble(ctx, []domain.RouteSummary{summary})
	if err != nil {
		return domain.RouteGeometry{}, fmt.Errorf("service.GeometryService.GetRouteGeometry: %w", err)
	}
	return out[0], nil
}

// assemble attaches waypoints to each summary, keeping the summaries' order.
func (s *GeometryService) assemble(ctx context.Context, summaries []domain.RouteSummary) ([]domain.RouteGeometry, error) {
	out := make([]domain.RouteGeometry, 0, len(summaries))
	if len(summaries) == 0 {
		return out, nil
	}

	ids := make([]int64, len(summaries))
	for i, rs := range summaries {
		ids[i] = rs.RouteID
	}

	points, err := s.routePoints.ListByRouteIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRoute := make(map[int64][]domain.RoutePoint, len(summaries))
	for _, p := range points {
		byRoute[p.RouteID] = append(byRoute[p.RouteID], p)
	}

	for _, rs := range summaries {
		out = append(out, geometryOf(rs, byRoute[rs.RouteID]))
	}
	return out, nil
}

// geometryOf projects a route and its waypoints, ordered by Seq.
func geometryOf(rs domain.RouteSummary, points []domain.RoutePoint) domain.RouteGeometry {
	slices.SortStableFunc(points, func(a, b domain.RoutePoint) int {
		return cmp.Compare(a.Seq, b.Seq)
	})

	coords := make([]domain.LatLng, len(points))
	for i, p := range points {
		coords[i] = domain.LatLng{p.Latitude, p.Longitude}
	}

	return domain.RouteGeometry{
		ID:               rs.RouteID,
		LineName:         strings.TrimSpace(rs.LineName),
		RouteDescription: strings.TrimSpace(rs.Description),
		Color:            rs.Color,
		Points:           coords,
	}
}

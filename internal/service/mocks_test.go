package service_test

import (
	"context"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/repo"
)

// mockLineRepo is a hand-written test double for repo.LineRepo.
type mockLineRepo struct {
	create func(ctx context.Context, line domain.Line) (domain.Line, error)
	list   func(ctx context.Context) ([]domain.Line, error)
}

func (m *mockLineRepo) Create(ctx context.Context, line domain.Line) (domain.Line, error) {
	return m.create(ctx, line)
}
func (m *mockLineRepo) List(ctx context.Context) ([]domain.Line, error) {
	return m.list(ctx)
}

// mockRouteRepo is a hand-written test double for repo.RouteRepo.
type mockRouteRepo struct {
	create        func(ctx context.Context, route domain.Route) (domain.Route, error)
	listSummaries func(ctx context.Context, lineID *int64) ([]domain.RouteSummary, error)
	getSummary    func(ctx context.Context, id int64) (domain.RouteSummary, error)
}

func (m *mockRouteRepo) Create(ctx context.Context, route domain.Route) (domain.Route, error) {
	return m.create(ctx, route)
}
func (m *mockRouteRepo) ListSummaries(ctx context.Context, lineID *int64) ([]domain.RouteSummary, error) {
	return m.listSummaries(ctx, lineID)
}
func (m *mockRouteRepo) GetSummary(ctx context.Context, id int64) (domain.RouteSummary, error) {
	return m.getSummary(ctx, id)
}

// mockRoutePointRepo is a hand-written test double for repo.RoutePointRepo.
// calls counts ListByRouteIDs invocations.
type mockRoutePointRepo struct {
	bulkInsert     func(ctx context.Context, points []domain.RoutePoint) (int64, error)
	listByRouteIDs func(ctx context.Context, ids []int64) ([]domain.RoutePoint, error)
	calls          int
}

func (m *mockRoutePointRepo) BulkInsert(ctx context.Context, points []domain.RoutePoint) (int64, error) {
	return m.bulkInsert(ctx, points)
}
func (m *mockRoutePointRepo) ListByRouteIDs(ctx context.Context, ids []int64) ([]domain.RoutePoint, error) {
	m.calls++
	return m.listByRouteIDs(ctx, ids)
}

// compile-time checks: mocks must satisfy the repo interfaces.
var (
	_ repo.LineRepo       = (*mockLineRepo)(nil)
	_ repo.RouteRepo      = (*mockRouteRepo)(nil)
	_ repo.RoutePointRepo = (*mockRoutePointRepo)(nil)
)

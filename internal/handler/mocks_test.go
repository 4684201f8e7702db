package handler_test

import (
	"context"
	"net/http"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/handler"
)

// mockLineServicer is a test double for handler.LineServicer.
type mockLineServicer struct {
	list func(ctx context.Context) ([]domain.Line, error)
}

func (m *mockLineServicer) List(ctx context.Context) ([]domain.Line, error) {
	return m.list(ctx)
}

// mockGeometryServicer is a test double for handler.GeometryServicer.
// Set only the method fields your test needs.
type mockGeometryServicer struct {
	listRouteGeometries func(ctx context.Context, lineID *int64) ([]domain.RouteGeometry, error)
	getRouteGeometry    func(ctx context.Context, id int64) (domain.RouteGeometry, error)
}

func (m *mockGeometryServicer) ListRouteGeometries(ctx context.Context, lineID *int64) ([]domain.RouteGeometry, error) {
	return m.listRouteGeometries(ctx, lineID)
}
func (m *mockGeometryServicer) GetRouteGeometry(ctx context.Context, id int64) (domain.RouteGeometry, error) {
	return m.getRouteGeometry(ctx, id)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.LineServicer     = (*mockLineServicer)(nil)
	_ handler.GeometryServicer = (*mockGeometryServicer)(nil)
)

// newHTTPHandler wires a Server with the given mocks into its chi router,
// the same way cmd/api does minus the middleware stack.
func newHTTPHandler(lines handler.LineServicer, geo handler.GeometryServicer) http.Handler {
	return handler.NewServer(lines, geo, []byte("openapi: 3.0.3\n")).Routes()
}

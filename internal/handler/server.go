// Package handler implements the HTTP handlers for the linea read API.
// All handlers are methods on Server; Routes mounts them on a chi router.
// Methods are split into resource files (health.go, line.go, route.go) but
// share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lineamx/linea/internal/domain"
)

// LineServicer defines the operations the line handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type LineServicer interface {
	List(ctx context.Context) ([]domain.Line, error)
}

// GeometryServicer defines the operations the route handlers depend on.
type GeometryServicer interface {
	ListRouteGeometries(ctx context.Context, lineID *int64) ([]domain.RouteGeometry, error)
	GetRouteGeometry(ctx context.Context, id int64) (domain.RouteGeometry, error)
}

// Server holds the dependencies of every handler.
type Server struct {
	lines    LineServicer
	geometry GeometryServicer
	openAPI  []byte
}

// NewServer constructs the Server with all its dependencies.
// openAPI is served verbatim at /openapi.yaml; pass nil to disable the route.
func NewServer(lines LineServicer, geometry GeometryServicer, openAPI []byte) *Server {
	return &Server{lines: lines, geometry: geometry, openAPI: openAPI}
}

// Routes returns a router with every endpoint registered.
// Middleware is the caller's concern; see cmd/api.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/lines", s.ListLines)
		r.Get("/routes", s.ListRoutes)
		r.Get("/rutas", s.ListRoutes)
		r.Get("/routes.geojson", s.ListRoutesGeoJSON)
		r.Get("/routes/{id}", s.GetRoute)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("no such endpoint"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: ErrorDetail{Code: "method_not_allowed", Message: r.Method + " is not supported"},
		})
	})
	return r
}

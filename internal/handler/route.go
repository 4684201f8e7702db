package handler

import (
	"net/http"

	"github.com/lineamx/linea/internal/domain"
)

// Route is the JSON shape of one route geometry. Points are [lat, lng]
// pairs in sequence order.
type Route struct {
	ID               int64        `json:"id"`
	LineName         string       `json:"line_name"`
	RouteDescription string       `json:"route_description"`
	Color            string       `json:"color"`
	Points           [][2]float64 `json:"points"`
}

// ListRoutes handles GET /api/routes and its alias GET /api/rutas.
// Supports an optional ?line_id= filter.
func (s *Server) ListRoutes(w http.ResponseWriter, r *http.Request) {
	lineID, err := lineIDParam(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	routes, err := s.geometry.ListRouteGeometries(r.Context(), lineID)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	out := make([]Route, len(routes))
	for i, g := range routes {
		out[i] = routeToResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRoute handles GET /api/routes/{id}.
func (s *Server) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, err := routeIDParam(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	g, err := s.geometry.GetRouteGeometry(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "route not found")
		return
	}
	writeJSON(w, http.StatusOK, routeToResponse(g))
}

func routeToResponse(g domain.RouteGeometry) Route {
	points := make([][2]float64, len(g.Points))
	for i, p := range g.Points {
		points[i] = p
	}
	return Route{
		ID:               g.ID,
		LineName:         g.LineName,
		RouteDescription: g.RouteDescription,
		Color:            g.Color,
		Points:           points,
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/lineamx/linea/internal/domain"
)

// ListRoutesGeoJSON handles GET /api/routes.geojson.
// Each route becomes a LineString feature. GeoJSON orders coordinates
// [lng, lat], the reverse of the /api/routes points.
func (s *Server) ListRoutesGeoJSON(w http.ResponseWriter, r *http.Request) {
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

	fc, err := featureCollection(routes)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	body, err := json.Marshal(fc)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func featureCollection(routes []domain.RouteGeometry) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(routes))}
	for _, g := range routes {
		f, err := routeFeature(g)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, f)
	}
	return fc, nil
}

func routeFeature(g domain.RouteGeometry) (*geojson.Feature, error) {
	coords := make([]geom.Coord, len(g.Points))
	for i, p := range g.Points {
		coords[i] = geom.Coord{p[1], p[0]}
	}

	ls, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}

	return &geojson.Feature{
		ID:       strconv.FormatInt(g.ID, 10),
		Geometry: ls,
		Properties: map[string]any{
			"line_name":         g.LineName,
			"route_description": g.RouteDescription,
			"color":             g.Color,
		},
	}, nil
}

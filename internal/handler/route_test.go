package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/handler"
)

func geometryFixture() domain.RouteGeometry {
	return domain.RouteGeometry{
		ID:               100,
		LineName:         "L001",
		RouteDescription: "Salida",
		Color:            "#FF0000",
		Points:           []domain.LatLng{{19.5, -99.1}, {19.6, -99.2}},
	}
}

func listing(t *testing.T, wantLine *int64, routes ...domain.RouteGeometry) *mockGeometryServicer {
	t.Helper()
	return &mockGeometryServicer{
		listRouteGeometries: func(_ context.Context, lineID *int64) ([]domain.RouteGeometry, error) {
			assert.Equal(t, wantLine, lineID)
			return routes, nil
		},
	}
}

// ---- GET /api/routes -------------------------------------------------------

func TestListRoutes_200(t *testing.T) {
	for _, path := range []string{"/api/routes", "/api/rutas"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()

			newHTTPHandler(nil, listing(t, nil, geometryFixture())).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[{
				"id": 100,
				"line_name": "L001",
				"route_description": "Salida",
				"color": "#FF0000",
				"points": [[19.5, -99.1], [19.6, -99.2]]
			}]`, rec.Body.String())
		})
	}
}

func TestListRoutes_200_LineFilter(t *testing.T) {
	lineID := int64(7)
	req := httptest.NewRequest(http.MethodGet, "/api/routes?line_id=7", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, listing(t, &lineID)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListRoutes_200_RouteWithoutPoints(t *testing.T) {
	g := geometryFixture()
	g.Points = nil

	req := httptest.NewRequest(http.MethodGet, "/api/routes", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, listing(t, nil, g)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []handler.Route
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.NotNil(t, resp[0].Points, "points must encode as [] not null")
}

func TestListRoutes_400_BadLineID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/routes?line_id=abc", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, &mockGeometryServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "line_id")
}

func TestListRoutes_500(t *testing.T) {
	svc := &mockGeometryServicer{
		listRouteGeometries: func(_ context.Context, _ *int64) ([]domain.RouteGeometry, error) {
			return nil, errors.New("boom")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/routes", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"internal server error"}}`, rec.Body.String())
}

// ---- GET /api/routes/{id} --------------------------------------------------

func TestGetRoute_200(t *testing.T) {
	svc := &mockGeometryServicer{
		getRouteGeometry: func(_ context.Context, id int64) (domain.RouteGeometry, error) {
			assert.Equal(t, int64(100), id)
			return geometryFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/routes/100", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.Route
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, [][2]float64{{19.5, -99.1}, {19.6, -99.2}}, resp.Points)
}

func TestGetRoute_404(t *testing.T) {
	svc := &mockGeometryServicer{
		getRouteGeometry: func(_ context.Context, _ int64) (domain.RouteGeometry, error) {
			return domain.RouteGeometry{}, fmt.Errorf("service.GeometryService.GetRouteGeometry: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/routes/999", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"route not found"}}`, rec.Body.String())
}

func TestGetRoute_400_BadID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-4", "1.5"} {
		t.Run(id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/routes/"+id, nil)
			rec := httptest.NewRecorder()

			newHTTPHandler(nil, &mockGeometryServicer{}).ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp handler.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "validation_error", resp.Error.Code)
		})
	}
}

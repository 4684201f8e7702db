package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/lineamx/linea/internal/domain"
)

// routeIDParam binds the {id} path segment the way the OpenAPI document
// declares it: simple style, integer.
func routeIDParam(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("%w: invalid route id: %w", domain.ErrValidation, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: invalid route id: must be positive", domain.ErrValidation)
	}
	return id, nil
}

// lineIDParam binds the optional ?line_id= filter. Absent means nil.
func lineIDParam(r *http.Request) (*int64, error) {
	var lineID *int64
	if err := runtime.BindQueryParameter("form", true, false, "line_id", r.URL.Query(), &lineID); err != nil {
		return nil, fmt.Errorf("%w: invalid line_id: %w", domain.ErrValidation, err)
	}
	return lineID, nil
}

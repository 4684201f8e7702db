// Package service contains the read-side business logic for the linea API.
// Services shape repo results into the projections handlers serve.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/repo"
)

// LineService serves the catalog of transport lines.
type LineService struct {
	lines repo.LineRepo
}

// NewLineService constructs a LineService backed by the provided LineRepo.
func NewLineService(r repo.LineRepo) *LineService {
	return &LineService{lines: r}
}

// List returns every stored line.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LineService) List(ctx context.Context) ([]domain.Line, error) {
	lines, err := s.lines.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LineService.List: %w", err)
	}
	if lines == nil {
		return []domain.Line{}, nil
	}
	return lines, nil
}

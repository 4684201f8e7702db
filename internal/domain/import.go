package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportSummary reports the outcome of one successful import run.
// Counts are rows actually created; skipped rows are reported separately.
type ImportSummary struct {
	RunID       uuid.UUID
	Lines       int
	Points      int
	Routes      int
	RoutePoints int

	SkippedRoutes      int
	SkippedRoutePoints int

	Duration time.Duration
}

package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/repo"
	"github.com/lineamx/linea/testutil"
)

// newTestStore opens a transaction against the test database and returns a
// Store backed by it. The transaction is rolled back when the test finishes.
func newTestStore(t *testing.T) (repo.Store, pgx.Tx) {
	t.Helper()
	tx := testutil.NewTx(t)
	s := repo.NewStore(tx)
	// Start from empty tables inside this transaction only.
	require.NoError(t, s.Maintenance.Reset(context.Background()))
	return s, tx
}

func mustCreateLine(t *testing.T, s repo.Store, name, color string) domain.Line {
	t.Helper()
	l, err := s.Lines.Create(context.Background(), domain.Line{Name: name, Color: color})
	require.NoError(t, err, "create line")
	return l
}

func mustCreatePoint(t *testing.T, s repo.Store, lat, lng float64) domain.Point {
	t.Helper()
	p, err := s.Points.Create(context.Background(), domain.Point{Latitude: lat, Longitude: lng})
	require.NoError(t, err, "create point")
	return p
}

func mustCreateRoute(t *testing.T, s repo.Store, lineID int64, number int, desc string) domain.Route {
	t.Helper()
	r, err := s.Routes.Create(context.Background(), domain.Route{
		LineID:      lineID,
		Number:      number,
		Description: desc,
		Distance:    12.5,
		Duration:    0.5,
	})
	require.NoError(t, err, "create route")
	return r
}

package ingest_test

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/repo"
)

// memDB is an in-memory stand-in for the network tables. WithinTx works on a
// copy of the committed state and swaps it in only when fn succeeds, which
// is enough to observe rollback behavior without Postgres.
type memDB struct {
	mu        sync.Mutex
	committed memState

	// bulkSizes records the length of every BulkInsert call, committed or not.
	bulkSizes []int
	// failBulk, when set, is returned by BulkInsert.
	failBulk error
	locks    int
}

type memState struct {
	nextID      int64
	lines       []domain.Line
	points      []domain.Point
	routes      []domain.Route
	routePoints []domain.RoutePoint
}

func (s memState) clone() memState {
	return memState{
		nextID:      s.nextID,
		lines:       slices.Clone(s.lines),
		points:      slices.Clone(s.points),
		routes:      slices.Clone(s.routes),
		routePoints: slices.Clone(s.routePoints),
	}
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

func newMemDB() *memDB { return &memDB{} }

func (m *memDB) WithinTx(ctx context.Context, fn func(repo.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.committed.clone()
	tx := &memTx{db: m, st: &work}
	store := repo.Store{
		Lines:       memLines{tx},
		Points:      memPoints{tx},
		Routes:      memRoutes{tx},
		RoutePoints: memRoutePoints{tx},
		Maintenance: memMaintenance{tx},
	}
	if err := fn(store); err != nil {
		return err
	}
	m.committed = work
	return nil
}

func (m *memDB) snapshot() memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed.clone()
}

type memTx struct {
	db *memDB
	st *memState
}

type memLines struct{ tx *memTx }

func (r memLines) Create(_ context.Context, l domain.Line) (domain.Line, error) {
	l.ID = r.tx.st.id()
	r.tx.st.lines = append(r.tx.st.lines, l)
	return l, nil
}

func (r memLines) List(context.Context) ([]domain.Line, error) {
	return slices.Clone(r.tx.st.lines), nil
}

type memPoints struct{ tx *memTx }

func (r memPoints) Create(_ context.Context, p domain.Point) (domain.Point, error) {
	p.ID = r.tx.st.id()
	r.tx.st.points = append(r.tx.st.points, p)
	return p, nil
}

type memRoutes struct{ tx *memTx }

func (r memRoutes) Create(_ context.Context, rt domain.Route) (domain.Route, error) {
	for _, existing := range r.tx.st.routes {
		if existing.LineID == rt.LineID && existing.Number == rt.Number {
			return domain.Route{}, fmt.Errorf("duplicate route number %d for line %d", rt.Number, rt.LineID)
		}
	}
	rt.ID = r.tx.st.id()
	r.tx.st.routes = append(r.tx.st.routes, rt)
	return rt, nil
}

func (r memRoutes) ListSummaries(_ context.Context, lineID *int64) ([]domain.RouteSummary, error) {
	out := []domain.RouteSummary{}
	for _, rt := range r.tx.st.routes {
		if lineID != nil && rt.LineID != *lineID {
			continue
		}
		out = append(out, r.summary(rt))
	}
	return out, nil
}

func (r memRoutes) GetSummary(_ context.Context, id int64) (domain.RouteSummary, error) {
	for _, rt := range r.tx.st.routes {
		if rt.ID == id {
			return r.summary(rt), nil
		}
	}
	return domain.RouteSummary{}, domain.ErrNotFound
}

func (r memRoutes) summary(rt domain.Route) domain.RouteSummary {
	s := domain.RouteSummary{RouteID: rt.ID, LineID: rt.LineID, Description: rt.Description}
	for _, l := range r.tx.st.lines {
		if l.ID == rt.LineID {
			s.LineName, s.Color = l.Name, l.Color
		}
	}
	return s
}

type memRoutePoints struct{ tx *memTx }

func (r memRoutePoints) BulkInsert(_ context.Context, pts []domain.RoutePoint) (int64, error) {
	r.tx.db.bulkSizes = append(r.tx.db.bulkSizes, len(pts))
	if r.tx.db.failBulk != nil {
		return 0, r.tx.db.failBulk
	}
	for _, p := range pts {
		p.ID = r.tx.st.id()
		r.tx.st.routePoints = append(r.tx.st.routePoints, p)
	}
	return int64(len(pts)), nil
}

func (r memRoutePoints) ListByRouteIDs(_ context.Context, ids []int64) ([]domain.RoutePoint, error) {
	out := []domain.RoutePoint{}
	for _, p := range r.tx.st.routePoints {
		if slices.Contains(ids, p.RouteID) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.RoutePoint) int {
		if a.RouteID != b.RouteID {
			return int(a.RouteID - b.RouteID)
		}
		return a.Seq - b.Seq
	})
	return out, nil
}

type memMaintenance struct{ tx *memTx }

func (r memMaintenance) LockImport(context.Context) error {
	r.tx.db.locks++
	return nil
}

func (r memMaintenance) Reset(context.Context) error {
	r.tx.st.lines = nil
	r.tx.st.points = nil
	r.tx.st.routes = nil
	r.tx.st.routePoints = nil
	return nil
}

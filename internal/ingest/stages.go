package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/lineamx/linea/internal/domain"
	"github.com/lineamx/linea/internal/locale"
	"github.com/lineamx/linea/internal/tsv"
)

// Column layouts, positional. Trailing columns beyond these are ignored.
const (
	lineColID = iota
	lineColName
	lineColColor
)

const (
	pointColID = iota
	pointColLat
	pointColLng
	pointColDesc
)

const (
	routeColID = iota
	routeColLine
	routeColNumber
	routeColDesc
	routeColDistance
	routeColTime
	routeCols
)

const (
	rpColID = iota
	rpColRoute
	rpColPoint
	rpColOrder
	rpColLat
	rpColLng
	rpColDistance
	rpColTime
	rpCols
)

func (r *run) loadLine(ctx context.Context) func(tsv.Row) error {
	return func(row tsv.Row) error {
		if err := row.Require(lineColName + 1); err != nil {
			return err
		}
		extID, err := parseInt(row, lineColID, "id")
		if err != nil {
			return err
		}

		color := strings.TrimSpace(row.Field(lineColColor))
		if color == "" {
			color = domain.DefaultLineColor
		}

		line, err := r.store.Lines.Create(ctx, domain.Line{
			Name:  strings.TrimSpace(row.Field(lineColName)),
			Color: color,
		})
		if err != nil {
			return fmt.Errorf("line %d: %w", row.Line, err)
		}

		r.remember(r.lines, "line", extID, line.ID, row.Line)
		r.summary.Lines++
		return nil
	}
}

func (r *run) loadPoint(ctx context.Context) func(tsv.Row) error {
	return func(row tsv.Row) error {
		if err := row.Require(pointColLng + 1); err != nil {
			return err
		}
		extID, err := parseInt(row, pointColID, "id")
		if err != nil {
			return err
		}
		lat, err := parseFloat(row, pointColLat, "latitude")
		if err != nil {
			return err
		}
		lng, err := parseFloat(row, pointColLng, "longitude")
		if err != nil {
			return err
		}

		point, err := r.store.Points.Create(ctx, domain.Point{
			Latitude:    lat,
			Longitude:   lng,
			Description: strings.TrimSpace(row.Field(pointColDesc)),
		})
		if err != nil {
			return fmt.Errorf("line %d: %w", row.Line, err)
		}

		r.remember(r.points, "point", extID, point.ID, row.Line)
		r.summary.Points++
		return nil
	}
}

func (r *run) loadRoute(ctx context.Context) func(tsv.Row) error {
	return func(row tsv.Row) error {
		if err := row.Require(routeCols); err != nil {
			return err
		}
		extID, err := parseInt(row, routeColID, "id")
		if err != nil {
			return err
		}
		extLine, err := parseInt(row, routeColLine, "line id")
		if err != nil {
			return err
		}

		lineID, ok := r.lines[extLine]
		if !ok {
			r.skip(row, "route", extID, fmt.Errorf("%w: line %d", domain.ErrReference, extLine))
			r.summary.SkippedRoutes++
			return nil
		}

		number, err := parseInt(row, routeColNumber, "route number")
		if err != nil {
			return err
		}
		distance, err := parseFloat(row, routeColDistance, "distance")
		if err != nil {
			return err
		}
		duration, err := parseFloat(row, routeColTime, "time")
		if err != nil {
			return err
		}

		route, err := r.store.Routes.Create(ctx, domain.Route{
			LineID:      lineID,
			Number:      int(number),
			Description: strings.TrimSpace(row.Field(routeColDesc)),
			Distance:    distance,
			Duration:    duration,
		})
		if err != nil {
			return fmt.Errorf("line %d: %w", row.Line, err)
		}

		r.remember(r.routes, "route", extID, route.ID, row.Line)
		r.summary.Routes++
		return nil
	}
}

// collectRoutePoint builds route points in memory; they are written in bulk
// by flushRoutePoints once the whole file has been read.
func (r *run) collectRoutePoint(pending *[]domain.RoutePoint) func(tsv.Row) error {
	return func(row tsv.Row) error {
		if err := row.Require(rpCols); err != nil {
			return err
		}
		extID, err := parseInt(row, rpColID, "id")
		if err != nil {
			return err
		}
		extRoute, err := parseInt(row, rpColRoute, "route id")
		if err != nil {
			return err
		}
		extPoint, err := parseInt(row, rpColPoint, "point id")
		if err != nil {
			return err
		}

		routeID, routeOK := r.routes[extRoute]
		pointID, pointOK := r.points[extPoint]
		switch {
		case !routeOK:
			r.skip(row, "route point", extID, fmt.Errorf("%w: route %d", domain.ErrReference, extRoute))
			r.summary.SkippedRoutePoints++
			return nil
		case !pointOK:
			r.skip(row, "route point", extID, fmt.Errorf("%w: point %d", domain.ErrReference, extPoint))
			r.summary.SkippedRoutePoints++
			return nil
		}

		order, err := parseInt(row, rpColOrder, "order")
		if err != nil {
			return err
		}
		vals, err := parseFloats(row,
			column{rpColLat, "latitude"},
			column{rpColLng, "longitude"},
			column{rpColDistance, "distance"},
			column{rpColTime, "time"},
		)
		if err != nil {
			return err
		}

		*pending = append(*pending, domain.RoutePoint{
			RouteID:   routeID,
			PointID:   pointID,
			Seq:       int(order),
			Latitude:  vals[0],
			Longitude: vals[1],
			Distance:  vals[2],
			Duration:  vals[3],
		})
		return nil
	}
}

// flushRoutePoints writes pending in chunks of at most batchSize rows
// (all at once when batchSize <= 0).
func (r *run) flushRoutePoints(ctx context.Context, pending []domain.RoutePoint, batchSize int) error {
	size := batchSize
	if size <= 0 || size > len(pending) {
		size = len(pending)
	}

	var written int64
	for start := 0; start < len(pending); start += size {
		end := min(start+size, len(pending))
		n, err := r.store.RoutePoints.BulkInsert(ctx, pending[start:end])
		if err != nil {
			return err
		}
		written += n
	}
	if written != int64(len(pending)) {
		return fmt.Errorf("bulk insert wrote %d of %d route points", written, len(pending))
	}

	r.summary.RoutePoints = len(pending)
	return nil
}

// remember records an id mapping. A repeated external id keeps the newest row.
func (r *run) remember(m map[int64]int64, kind string, extID, id int64, line int) {
	if _, dup := m[extID]; dup {
		r.log.Warn("duplicate external id; later row wins", "kind", kind, "external_id", extID, "line", line)
	}
	m[extID] = id
}

func (r *run) skip(row tsv.Row, kind string, extID int64, reason error) {
	r.log.Warn(kind+" skipped",
		"external_id", extID,
		"line", row.Line,
		"reason", reason.Error(),
	)
}

type column struct {
	index int
	name  string
}

func parseFloat(row tsv.Row, col int, name string) (float64, error) {
	f, err := locale.ParseFloat(row.Field(col))
	if err != nil {
		return 0, fmt.Errorf("line %d column %q: %w", row.Line, name, err)
	}
	return f, nil
}

func parseFloats(row tsv.Row, cols ...column) ([]float64, error) {
	out := make([]float64, len(cols))
	for i, c := range cols {
		f, err := parseFloat(row, c.index, c.name)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func parseInt(row tsv.Row, col int, name string) (int64, error) {
	n, err := locale.ParseInt(row.Field(col))
	if err != nil {
		return 0, fmt.Errorf("line %d column %q: %w", row.Line, name, err)
	}
	return n, nil
}

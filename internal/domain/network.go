// Package domain contains the core data types for the linea transit network.
// It depends on nothing but google/uuid and is imported by every other
// internal package (repo, service, handler, ingest).
package domain

// DefaultLineColor is used when the source file carries no color for a line.
const DefaultLineColor = "#000000"

// Line is a named transport line with a display color.
type Line struct {
	ID    int64
	Name  string
	Color string // hex, e.g. "#FF0000"
}

// Point is a geographic coordinate. It is not owned by any route; many
// route points may reference the same Point.
type Point struct {
	ID          int64
	Latitude    float64
	Longitude   float64
	Description string
}

// Route is one sequenced path of a Line.
// (LineID, Number) is unique.
type Route struct {
	ID          int64
	LineID      int64
	Number      int
	Description string
	Distance    float64
	Duration    float64
}

// RoutePoint is one ordered waypoint of a Route.
// Latitude and Longitude are a snapshot taken from the source file and may
// differ from the referenced Point (e.g. smoothed for display).
// Distance and Duration are incremental from the previous waypoint.
type RoutePoint struct {
	ID        int64
	RouteID   int64
	PointID   int64
	Seq       int
	Latitude  float64
	Longitude float64
	Distance  float64
	Duration  float64
}

// RouteSummary is a Route joined with the Line fields the map needs.
type RouteSummary struct {
	RouteID     int64
	LineID      int64
	LineName    string
	Description string
	Color       string
}

// LatLng is a [latitude, longitude] pair.
type LatLng [2]float64

// RouteGeometry is the read projection served to map clients: one route with
// its waypoints ordered by sequence.
type RouteGeometry struct {
	ID               int64
	LineName         string
	RouteDescription string
	Color            string
	Points           []LatLng
}

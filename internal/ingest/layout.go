package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Layout names the four source files inside the data directory.
type Layout struct {
	Lines       string `yaml:"lines" validate:"required"`
	Points      string `yaml:"points" validate:"required"`
	Routes      string `yaml:"routes" validate:"required"`
	RoutePoints string `yaml:"route_points" validate:"required"`
}

// DefaultLayout returns the file names used by the spreadsheet export the
// data is published as.
func DefaultLayout() Layout {
	return Layout{
		Lines:       "Lineas.csv",
		Points:      "Puntos.csv",
		Routes:      "LineaRuta.csv",
		RoutePoints: "LineasPuntos.csv",
	}
}

// LoadLayout reads a YAML layout file. Keys left out keep their default name.
//
//	lines: lines.tsv
//	route_points: route_points.tsv
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("ingest.LoadLayout: %w", err)
	}

	l := DefaultLayout()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("ingest.LoadLayout: parse %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("ingest.LoadLayout: %s: %w", path, err)
	}
	return l, nil
}

// Validate checks every name is set and is a bare file name, so a layout can
// never point outside the data directory.
func (l Layout) Validate() error {
	if err := validator.New().Struct(l); err != nil {
		return err
	}
	for _, name := range []string{l.Lines, l.Points, l.Routes, l.RoutePoints} {
		if filepath.Base(name) != name || name == "." || name == ".." {
			return fmt.Errorf("file name %q must not contain a directory", name)
		}
	}
	return nil
}

package handler

import (
	"net/http"

	"github.com/lineamx/linea/internal/domain"
)

// Line is the JSON shape of a transport line.
type Line struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListLines handles GET /api/lines.
func (s *Server) ListLines(w http.ResponseWriter, r *http.Request) {
	lines, err := s.lines.List(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = lineToResponse(l)
	}
	writeJSON(w, http.StatusOK, out)
}

func lineToResponse(l domain.Line) Line {
	return Line{ID: l.ID, Name: l.Name, Color: l.Color}
}

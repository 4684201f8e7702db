// Package tsv streams tab-delimited source files row by row.
// The first row of every file is a header and is always skipped.
package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lineamx/linea/internal/domain"
)

// Row is one data row. Line is the 1-based line number in the file, for
// diagnostics.
type Row struct {
	Line   int
	Fields []string
}

// Field returns the i-th field, or "" when the row is shorter than i+1.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Has reports whether the row carries a non-blank value in column i.
func (r Row) Has(i int) bool {
	return strings.TrimSpace(r.Field(i)) != ""
}

// Require returns a domain.ErrMalformedRow error when the row has fewer than n columns.
func (r Row) Require(n int) error {
	if len(r.Fields) < n {
		return fmt.Errorf("line %d: %w: has %d columns, need %d", r.Line, domain.ErrMalformedRow, len(r.Fields), n)
	}
	return nil
}

// EachFile opens path and calls fn for every data row.
// A missing file surfaces as an error matching os.ErrNotExist; callers decide
// how to classify it.
func EachFile(path string, fn func(Row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Each(f, fn)
}

// Each reads tab-delimited rows from r, skips the header, and calls fn for
// each data row. Blank lines are ignored. Iteration stops at the first
// error returned by fn.
func Each(r io.Reader, fn func(Row) error) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1 // trailing ignored columns vary per export
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: missing header row", domain.ErrMalformedRow)
		}
		return fmt.Errorf("read header: %w", err)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if err := fn(Row{Line: line, Fields: rec}); err != nil {
			return err
		}
	}
}

package ingest

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/lineamx/linea/internal/domain"
)

// SourceError ties a failed run to the source file being processed.
// Use errors.Is with the domain sentinels to classify the cause:
// domain.ErrSourceMissing, domain.ErrFormat, domain.ErrMalformedRow.
type SourceError struct {
	File string
	Err  error
}

func (e *SourceError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

func sourceError(file string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: %w", domain.ErrSourceMissing, err)
	}
	return &SourceError{File: file, Err: err}
}

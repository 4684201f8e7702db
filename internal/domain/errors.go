package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when request input fails validation (e.g. a
// non-numeric route id). Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrSourceMissing is returned by the import pipeline when one of the four
// source files does not exist in the data directory. The whole run is aborted.
var ErrSourceMissing = errors.New("source file missing")

// ErrFormat is returned when a numeric field cannot be parsed.
// A malformed number means the file itself is broken, so the run is aborted
// rather than the row skipped.
var ErrFormat = errors.New("invalid number format")

// ErrMalformedRow is returned when a data row has fewer columns than its
// layout requires, or a file has no header row.
var ErrMalformedRow = errors.New("malformed row")

// ErrReference marks a row whose foreign key could not be resolved against
// rows loaded earlier in the same run. It is never returned from a run:
// the row is skipped and the error only appears in diagnostics.
var ErrReference = errors.New("unresolved reference")

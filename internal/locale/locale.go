// Package locale parses numbers written with a comma as the decimal
// separator, as exported by spreadsheet tools in es-MX locales.
package locale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lineamx/linea/internal/domain"
)

// FormatError reports a token that is not a valid decimal numeral.
// errors.Is(err, domain.ErrFormat) is true for every FormatError.
type FormatError struct {
	Token string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q", domain.ErrFormat, e.Token)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets callers match on the domain sentinel without losing the strconv cause.
func (e *FormatError) Is(target error) bool { return target == domain.ErrFormat }

// ParseFloat converts a comma-decimal token such as "12,345" to 12.345.
// Surrounding whitespace is ignored. A period is accepted as well, so
// already-normalized values parse unchanged.
func ParseFloat(token string) (float64, error) {
	s := strings.Replace(strings.TrimSpace(token), ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Token: token, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &FormatError{Token: token, Err: strconv.ErrRange}
	}
	return f, nil
}

// ParseInt parses token with ParseFloat and truncates toward zero.
// Source files store identifiers as decimals ("12,0"), so this is the
// only way to read them.
func ParseInt(token string) (int64, error) {
	f, err := ParseFloat(token)
	if err != nil {
		return 0, err
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, &FormatError{Token: token, Err: strconv.ErrRange}
	}
	return int64(math.Trunc(f)), nil
}

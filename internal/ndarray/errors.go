package ndarray

import "github.com/pkg/errors"

// Error kinds. Every failure returned or raised by this package wraps exactly
// one of them, so callers can test with errors.Is.
var (
	ErrRankMismatch     = errors.New("rank mismatch")
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrOutOfRange       = errors.New("out of range")
	ErrNonCompactLayout = errors.New("layout is not compact")
	ErrInvalidShape     = errors.New("invalid shape")
	ErrReadOnly         = errors.New("buffer is read-only")
)

// fail raises err as a panic. It is used by element accessors, whose
// signatures have no room for an error.
func fail(err error) {
	panic(err)
}

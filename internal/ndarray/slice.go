package ndarray

import (
	"fmt"
	"math"
)

// End is the Hi value meaning "up to the end of the axis".
const End = math.MaxInt

// Range selects the half-open interval [Lo, Hi) of one axis. A Range with
// Lo == Hi selects the single index Lo and removes the axis from the result.
type Range struct {
	Lo, Hi int
}

// All selects a whole axis.
func All() Range { return Range{Lo: 0, Hi: End} }

// Span selects [lo, hi).
func Span(lo, hi int) Range { return Range{Lo: lo, Hi: hi} }

// From selects [lo, end of axis).
func From(lo int) Range { return Range{Lo: lo, Hi: End} }

// Point selects index i and drops the axis.
func Point(i int) Range { return Range{Lo: i, Hi: i} }

// IsPoint reports whether r drops its axis.
func (r Range) IsPoint() bool { return r.Lo == r.Hi }

func (r Range) String() string {
	switch {
	case r.IsPoint():
		return fmt.Sprintf("%d", r.Lo)
	case r.Hi == End:
		return fmt.Sprintf("%d:", r.Lo)
	default:
		return fmt.Sprintf("%d:%d", r.Lo, r.Hi)
	}
}

// fullRanges returns ranges selecting [0, shape[i]) on every axis.
func fullRanges(shape Shape) []Range {
	r := make([]Range, len(shape))
	for i, n := range shape {
		r[i] = Span(0, n)
	}
	return r
}

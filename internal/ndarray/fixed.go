package ndarray

import "github.com/pkg/errors"

// Rank is implemented by the type-level rank markers R0..R5.
type Rank interface {
	Rank() int
}

// Rank markers. Use them as the R type argument of the fixed-rank types.
type (
	R0 struct{}
	R1 struct{}
	R2 struct{}
	R3 struct{}
	R4 struct{}
	R5 struct{}
)

func (R0) Rank() int { return 0 }
func (R1) Rank() int { return 1 }
func (R2) Rank() int { return 2 }
func (R3) Rank() int { return 3 }
func (R4) Rank() int { return 4 }
func (R5) Rank() int { return 5 }

func rankOf[R Rank]() int {
	var r R
	return r.Rank()
}

func checkRank[R Rank](got int) error {
	if want := rankOf[R](); got != want {
		return errors.Wrapf(ErrRankMismatch, "expected rank %d, got %d", want, got)
	}
	return nil
}

// FixedLayout is a Layout whose rank is part of its type. All operations
// are those of the embedded Layout.
type FixedLayout[R Rank] struct {
	Layout
}

// NewFixedLayout returns the C-contiguous layout of shape, which must have
// rank R.
func NewFixedLayout[R Rank](shape Shape) (FixedLayout[R], error) {
	if err := checkRank[R](len(shape)); err != nil {
		return FixedLayout[R]{}, err
	}
	l, err := NewLayout(shape)
	if err != nil {
		return FixedLayout[R]{}, err
	}
	return FixedLayout[R]{l}, nil
}

// AsFixedLayout narrows a dynamic layout to rank R.
func AsFixedLayout[R Rank](l Layout) (FixedLayout[R], error) {
	if err := checkRank[R](l.Rank()); err != nil {
		return FixedLayout[R]{}, err
	}
	return FixedLayout[R]{l}, nil
}

// Dynamic returns the layout as a dynamic-rank Layout.
func (f FixedLayout[R]) Dynamic() Layout {
	return f.Layout
}

package ndarray

import (
	"fmt"

	"github.com/pkg/errors"
)

// View is a read-only strided array: a Layout over a Buffer, starting at a
// base offset. Views are cheap values. Deriving a view (SubView, SwapAxes,
// BroadcastTo) never copies element data; the result shares the buffer.
//
// Example:
//
//	m, _ := ndarray.New[float64](ndarray.Shape{3, 4})
//	row, _ := m.ReadOnly().SubView(ndarray.Point(1), ndarray.All())
//	x := row.At(2) // same element as m.At(1, 2)
type View[T Element] struct {
	layout Layout
	buf    Buffer[T]
	offset int
}

// NewView builds a read-only view of buf. Every element reachable through
// layout from offset must lie inside the buffer. The view takes its own
// share of buf.
func NewView[T Element](buf Buffer[T], layout Layout, offset int) (View[T], error) {
	if err := checkBounds(layout, offset, buf.Len()); err != nil {
		return View[T]{}, err
	}
	return View[T]{layout: layout, buf: buf.retain(), offset: offset}, nil
}

// FromSlice returns a C-contiguous read-only view of caller-owned data.
func FromSlice[T Element](data []T, shape Shape) (View[T], error) {
	l, err := NewLayout(shape)
	if err != nil {
		return View[T]{}, err
	}
	return NewView(Borrow(data), l, 0)
}

// FromStridedSlice returns a read-only view of caller-owned data with
// explicit strides. Negative strides are allowed as long as every reachable
// element lies inside data.
//
// The view's origin (the element at index 0 of every axis) is data[-lo],
// where lo is the most negative offset reachable through stride, so the
// reachable elements start at data[0]. With only non-negative strides the
// origin is data[0]. For example shape {4} with stride {-1} over
// [0 1 2 3] reads 3 2 1 0 and has Offset 3.
func FromStridedSlice[T Element](data []T, shape Shape, stride Stride) (View[T], error) {
	l, err := NewStridedLayout(shape, stride)
	if err != nil {
		return View[T]{}, err
	}
	lo, _ := l.Span()
	return NewView(Borrow(data), l, -lo)
}

// validate rejects the zero View and views whose layout no longer fits the
// buffer, e.g. after Release.
func (v View[T]) validate() error {
	if v.layout.shape == nil && v.layout.size == 0 {
		return errors.Wrap(ErrInvalidShape, "zero-value view has no layout")
	}
	return checkBounds(v.layout, v.offset, v.buf.Len())
}

func checkBounds(l Layout, offset, n int) error {
	if l.Size() == 0 {
		return nil
	}
	lo, hi := l.Span()
	if offset+lo < 0 || offset+hi >= n {
		return errors.Wrapf(ErrOutOfRange,
			"layout %v at offset %d reaches [%d, %d] outside buffer of %d elements",
			l, offset, offset+lo, offset+hi, n)
	}
	return nil
}

// Layout returns the view's shape and strides.
func (v View[T]) Layout() Layout { return v.layout }

// Shape returns a copy of the view's extents.
func (v View[T]) Shape() Shape { return v.layout.Shape() }

// Strides returns a copy of the view's strides.
func (v View[T]) Strides() Stride { return v.layout.Strides() }

// Rank returns the number of axes.
func (v View[T]) Rank() int { return v.layout.Rank() }

// Size returns the number of elements.
func (v View[T]) Size() int { return v.layout.Size() }

// Offset returns the position of the view's origin inside its buffer.
func (v View[T]) Offset() int { return v.offset }

// Buffer returns the view's buffer handle without taking a share.
func (v View[T]) Buffer() Buffer[T] { return v.buf }

// Data returns the whole underlying buffer. The view's element at
// multi-index idx is Data()[Offset()+Layout().Index(idx)].
// WARNING: the returned slice must not be modified through a read-only view.
func (v View[T]) Data() []T { return v.buf.data }

// At returns the element at the given indices.
// Panics if the number of indices differs from the rank or an index is out
// of bounds.
func (v View[T]) At(idx ...int) T {
	off, err := v.layout.Index(idx...)
	if err != nil {
		fail(err)
	}
	return v.buf.data[v.offset+off]
}

// Raw returns the element at linear offset i from the view's origin.
func (v View[T]) Raw(i int) T {
	return v.buf.data[v.offset+i]
}

// SubView returns the part of the view selected by one Range per axis.
func (v View[T]) SubView(ranges ...Range) (View[T], error) {
	l, off, err := v.layout.SubRange(ranges...)
	if err != nil {
		return View[T]{}, err
	}
	return View[T]{layout: l, buf: v.buf.retain(), offset: v.offset + off}, nil
}

// BroadcastTo returns a read-only view of the target shape in which every
// expanded axis has stride 0.
func (v View[T]) BroadcastTo(shape Shape) (View[T], error) {
	l, err := v.layout.BroadcastTo(shape)
	if err != nil {
		return View[T]{}, err
	}
	return View[T]{layout: l, buf: v.buf.Share(), offset: v.offset}, nil
}

// SwapAxes returns the view with axes a and b exchanged.
func (v View[T]) SwapAxes(a, b int) (View[T], error) {
	l, err := v.layout.SwapAxes(a, b)
	if err != nil {
		return View[T]{}, err
	}
	return View[T]{layout: l, buf: v.buf.retain(), offset: v.offset}, nil
}

// Release gives up the view's share of its buffer. The view is empty afterwards.
func (v *View[T]) Release() {
	v.buf.Release()
	*v = View[T]{}
}

// String returns a description such as "View[float64][2 3]:[3 1]".
func (v View[T]) String() string {
	return fmt.Sprintf("View[%s]%v", DataTypeOf[T](), v.layout)
}

package ndarray

import (
	"fmt"

	"github.com/pkg/errors"
)

// MutView is a writable strided array. It offers everything View does, and
// its derived views (SubView, SwapAxes) stay writable. BroadcastTo yields a
// read-only View, since broadcast axes alias a single element.
type MutView[T Element] struct {
	View[T]
}

// NewMutView builds a writable view of buf. It fails with ErrReadOnly on a
// Shared handle.
func NewMutView[T Element](buf Buffer[T], layout Layout, offset int) (MutView[T], error) {
	if !buf.Writable() {
		return MutView[T]{}, errors.Wrapf(ErrReadOnly, "cannot build a writable view on a %s buffer", buf.Ownership())
	}
	v, err := NewView(buf, layout, offset)
	if err != nil {
		return MutView[T]{}, err
	}
	return MutView[T]{v}, nil
}

// MutFromSlice returns a C-contiguous writable view of caller-owned data.
func MutFromSlice[T Element](data []T, shape Shape) (MutView[T], error) {
	v, err := FromSlice(data, shape)
	if err != nil {
		return MutView[T]{}, err
	}
	return MutView[T]{v}, nil
}

// MutFromStridedSlice returns a writable view of caller-owned data with
// explicit strides. The origin follows FromStridedSlice: element 0 is
// data[-lo] for the most negative reachable offset lo.
func MutFromStridedSlice[T Element](data []T, shape Shape, stride Stride) (MutView[T], error) {
	v, err := FromStridedSlice(data, shape, stride)
	if err != nil {
		return MutView[T]{}, err
	}
	return MutView[T]{v}, nil
}

// ReadOnly returns a read-only view of the same elements holding a Shared
// share of the buffer.
func (m MutView[T]) ReadOnly() View[T] {
	return View[T]{layout: m.layout, buf: m.buf.Share(), offset: m.offset}
}

// Data returns the whole underlying buffer for writing.
func (m MutView[T]) Data() []T { return m.buf.data }

// Set sets the element at the given indices.
// Panics if the number of indices differs from the rank or an index is out
// of bounds.
func (m MutView[T]) Set(value T, idx ...int) {
	*m.Ptr(idx...) = value
}

// Ptr returns a pointer to the element at the given indices.
func (m MutView[T]) Ptr(idx ...int) *T {
	off, err := m.layout.Index(idx...)
	if err != nil {
		fail(err)
	}
	return &m.buf.data[m.offset+off]
}

// SubView returns the writable part of the view selected by one Range per axis.
func (m MutView[T]) SubView(ranges ...Range) (MutView[T], error) {
	v, err := m.View.SubView(ranges...)
	if err != nil {
		return MutView[T]{}, err
	}
	return MutView[T]{v}, nil
}

// SwapAxes returns the writable view with axes a and b exchanged.
func (m MutView[T]) SwapAxes(a, b int) (MutView[T], error) {
	v, err := m.View.SwapAxes(a, b)
	if err != nil {
		return MutView[T]{}, err
	}
	return MutView[T]{v}, nil
}

// String returns a description such as "MutView[float64][2 3]:[3 1]".
func (m MutView[T]) String() string {
	return fmt.Sprintf("MutView[%s]%v", DataTypeOf[T](), m.layout)
}

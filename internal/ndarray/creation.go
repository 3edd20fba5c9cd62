package ndarray

import "github.com/pkg/errors"

// New returns a zero-filled, C-contiguous writable array of the given shape.
//
// Example:
//
//	m, err := ndarray.New[float32](ndarray.Shape{3, 4})
func New[T Element](shape Shape) (MutView[T], error) {
	return newOwned[T](shape, true)
}

// NewUninitialized is New without clearing the storage. Every element must
// be written before it is read.
func NewUninitialized[T Element](shape Shape) (MutView[T], error) {
	return newOwned[T](shape, false)
}

func newOwned[T Element](shape Shape, zero bool) (MutView[T], error) {
	l, err := NewLayout(shape)
	if err != nil {
		return MutView[T]{}, err
	}
	return adopt(allocate[T](l.Size(), zero), l, 0), nil
}

// NewStrided returns an uninitialized writable array with caller-chosen
// strides. The layout must be compact: its reachable offsets must cover a
// block of exactly Size elements, which is what gets allocated.
func NewStrided[T Element](shape Shape, stride Stride) (MutView[T], error) {
	l, err := NewStridedLayout(shape, stride)
	if err != nil {
		return MutView[T]{}, err
	}
	if !l.Compact() {
		lo, hi := l.Span()
		return MutView[T]{}, errors.Wrapf(ErrNonCompactLayout,
			"layout %v spans %d elements but holds %d", l, hi-lo+1, l.Size())
	}
	lo, _ := l.Span()
	return adopt(allocate[T](l.Size(), false), l, -lo), nil
}

// adopt wraps a freshly allocated buffer, handing its only share to the view.
func adopt[T Element](buf Buffer[T], l Layout, offset int) MutView[T] {
	return MutView[T]{View[T]{layout: l, buf: buf, offset: offset}}
}

// Full returns a writable array with every element set to value.
func Full[T Element](shape Shape, value T) (MutView[T], error) {
	m, err := NewUninitialized[T](shape)
	if err != nil {
		return MutView[T]{}, err
	}
	data := m.Data()
	for i := range data {
		data[i] = value
	}
	return m, nil
}

// BuildUniform returns a read-only view of the given shape in which every
// element reads value. Only one element is stored; all strides are 0.
func BuildUniform[T Element](shape Shape, value T) (View[T], error) {
	if err := shape.Validate(); err != nil {
		return View[T]{}, err
	}
	buf := allocate[T](1, false)
	buf.data[0] = value
	l := newLayout(shape.Clone(), make(Stride, len(shape)))
	return View[T]{layout: l, buf: buf.freeze(), offset: 0}, nil
}

// BuildNoncritical returns a writable C-ordered array of the given shape
// whose strides avoid multiples of the critical stride. The storage is
// padded where needed and the returned view is trimmed back to shape.
func BuildNoncritical[T Element](shape Shape, uninitialized bool) (MutView[T], error) {
	if err := shape.Validate(); err != nil {
		return MutView[T]{}, err
	}
	if (uninitialized && len(shape) <= 1) || shape.NumElements() == 0 {
		return newOwned[T](shape, !uninitialized)
	}
	padded := noncriticalShape(shape, elemSize[T](), CriticalStride())
	tmp, err := newOwned[T](padded, !uninitialized)
	if err != nil {
		return MutView[T]{}, err
	}
	sub, err := tmp.SubView(fullRanges(shape)...)
	// sub holds its own share now.
	tmp.Release()
	if err != nil {
		return MutView[T]{}, err
	}
	return sub, nil
}

package ndarray

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Layout describes how a multidimensional array maps onto linear storage:
// the extent and element stride of every axis. It owns no memory.
//
// Layouts are immutable. Every method that changes the description returns
// a new Layout and leaves the receiver untouched.
type Layout struct {
	shape  Shape
	stride Stride
	size   int
}

// NewLayout returns the C-contiguous layout of shape.
func NewLayout(shape Shape) (Layout, error) {
	if err := shape.Validate(); err != nil {
		return Layout{}, err
	}
	return newLayout(shape.Clone(), shape.ComputeStrides()), nil
}

// NewStridedLayout returns a layout with caller-supplied strides, e.g. for a
// transposed or sliced array.
func NewStridedLayout(shape Shape, stride Stride) (Layout, error) {
	if len(shape) != len(stride) {
		return Layout{}, errors.Wrapf(ErrRankMismatch,
			"shape %v has %d axes but stride %v has %d", shape, len(shape), stride, len(stride))
	}
	if err := shape.Validate(); err != nil {
		return Layout{}, err
	}
	return newLayout(shape.Clone(), stride.Clone()), nil
}

// newLayout takes ownership of shape and stride.
func newLayout(shape Shape, stride Stride) Layout {
	return Layout{shape: shape, stride: stride, size: shape.NumElements()}
}

// Rank returns the number of axes.
func (l Layout) Rank() int { return len(l.shape) }

// Size returns the total number of elements.
func (l Layout) Size() int { return l.size }

// Shape returns a copy of the extents.
func (l Layout) Shape() Shape { return l.shape.Clone() }

// Dim returns the extent of axis i.
func (l Layout) Dim(i int) int { return l.shape[i] }

// Strides returns a copy of the strides.
func (l Layout) Strides() Stride { return l.stride.Clone() }

// Stride returns the stride of axis i.
func (l Layout) Stride(i int) int { return l.stride[i] }

// LastContiguous reports whether the innermost axis has stride 1.
// Rank-0 layouts are trivially last-contiguous.
func (l Layout) LastContiguous() bool {
	return len(l.stride) == 0 || l.stride[len(l.stride)-1] == 1
}

// Contiguous reports whether the layout is a single C-contiguous block.
func (l Layout) Contiguous() bool {
	want := 1
	for i := len(l.shape) - 1; i >= 0; i-- {
		if l.stride[i] != want {
			return false
		}
		want *= l.shape[i]
	}
	return true
}

// Conformable reports whether both layouts have the same shape.
func (l Layout) Conformable(other Layout) bool {
	return l.shape.Equal(other.shape)
}

// ConformableShape reports whether the layout has the given shape.
func (l Layout) ConformableShape(shape Shape) bool {
	return l.shape.Equal(shape)
}

// Equal reports whether both layouts have the same shape and strides.
func (l Layout) Equal(other Layout) bool {
	if !l.shape.Equal(other.shape) {
		return false
	}
	for i := range l.stride {
		if l.stride[i] != other.stride[i] {
			return false
		}
	}
	return true
}

// Index returns the linear offset sum(idx[d]*stride[d]) of a multi-index.
func (l Layout) Index(idx ...int) (int, error) {
	if len(idx) != len(l.shape) {
		return 0, errors.Wrapf(ErrRankMismatch, "got %d indices for rank %d", len(idx), len(l.shape))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= l.shape[d] {
			return 0, errors.Wrapf(ErrOutOfRange, "index %d out of bounds for axis %d (extent %d)", i, d, l.shape[d])
		}
		off += i * l.stride[d]
	}
	return off, nil
}

// Span returns the smallest and largest offsets reachable from the origin.
// Both are 0 for an empty layout.
func (l Layout) Span() (lo, hi int) {
	if l.size == 0 {
		return 0, 0
	}
	for d, n := range l.shape {
		reach := (n - 1) * l.stride[d]
		if reach < 0 {
			lo += reach
		} else {
			hi += reach
		}
	}
	return lo, hi
}

// Compact reports whether the reachable offsets form one gap-free block of
// exactly Size elements.
func (l Layout) Compact() bool {
	lo, hi := l.Span()
	return hi-lo+1 == l.size || l.size == 0
}

// BroadcastShape returns the common broadcast shape of l and other.
func (l Layout) BroadcastShape(other Shape) (Shape, error) {
	return BroadcastShapes(l.shape, other)
}

// BroadcastTo returns a layout of the target shape that reads the same
// elements: trailing axes are aligned, and expanded or prepended axes get
// stride 0.
func (l Layout) BroadcastTo(target Shape) (Layout, error) {
	if len(target) < len(l.shape) {
		return Layout{}, errors.Wrapf(ErrRankMismatch,
			"cannot broadcast rank %d to lower rank %d", len(l.shape), len(target))
	}
	if err := target.Validate(); err != nil {
		return Layout{}, err
	}
	lead := len(target) - len(l.shape)
	stride := make(Stride, len(target))
	for i, n := range l.shape {
		if n == 1 {
			continue
		}
		if n != target[lead+i] {
			return Layout{}, errors.Wrapf(ErrShapeMismatch,
				"cannot broadcast %v to %v (axis %d: %d vs %d)", l.shape, target, i, n, target[lead+i])
		}
		stride[lead+i] = l.stride[i]
	}
	return newLayout(target.Clone(), stride), nil
}

// SwapAxes returns the layout with axes a and b exchanged.
func (l Layout) SwapAxes(a, b int) (Layout, error) {
	r := len(l.shape)
	if a < 0 || a >= r || b < 0 || b >= r {
		return Layout{}, errors.Wrapf(ErrOutOfRange, "cannot swap axes %d and %d of rank %d", a, b, r)
	}
	shape, stride := l.shape.Clone(), l.stride.Clone()
	shape[a], shape[b] = shape[b], shape[a]
	stride[a], stride[b] = stride[b], stride[a]
	return newLayout(shape, stride), nil
}

// SubRange selects one Range per axis and returns the resulting layout plus
// the offset of its origin relative to the receiver's origin. Point ranges
// remove their axis, so the result has rank Rank() minus the number of points.
func (l Layout) SubRange(ranges ...Range) (Layout, int, error) {
	if len(ranges) != len(l.shape) {
		return Layout{}, 0, errors.Wrapf(ErrRankMismatch,
			"got %d ranges for rank %d", len(ranges), len(l.shape))
	}
	var (
		shape  Shape
		stride Stride
		off    int
	)
	for d, r := range ranges {
		n := l.shape[d]
		if r.Lo < 0 || r.Lo >= n {
			return Layout{}, 0, errors.Wrapf(ErrOutOfRange,
				"range %v starts outside axis %d (extent %d)", r, d, n)
		}
		off += r.Lo * l.stride[d]
		if r.IsPoint() {
			continue
		}
		ext := r.Hi - r.Lo
		if r.Hi == End {
			ext = n - r.Lo
		}
		if ext < 0 || r.Lo+ext > n {
			return Layout{}, 0, errors.Wrapf(ErrOutOfRange,
				"range %v exceeds axis %d (extent %d)", r, d, n)
		}
		shape = append(shape, ext)
		stride = append(stride, l.stride[d])
	}
	if shape == nil {
		shape, stride = Shape{}, Stride{}
	}
	return newLayout(shape, stride), off, nil
}

// split returns the layouts of the leading rank-k axes and the trailing k axes.
func (l Layout) split(k int) (outer, inner Layout) {
	cut := len(l.shape) - k
	outer = newLayout(l.shape[:cut:cut].Clone(), l.stride[:cut:cut].Clone())
	inner = newLayout(l.shape[cut:].Clone(), l.stride[cut:].Clone())
	return outer, inner
}

// String returns a compact description such as "[2 3]:[3 1]".
func (l Layout) String() string {
	return fmt.Sprintf("%v:%v", []int(l.shape), []int(l.stride))
}

// LogValue implements slog.LogValuer.
func (l Layout) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("shape", []int(l.shape)),
		slog.Any("stride", []int(l.stride)),
		slog.Int("size", l.size),
	)
}

package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLayout(t *testing.T, shape Shape) Layout {
	t.Helper()
	l, err := NewLayout(shape)
	require.NoError(t, err)
	return l
}

func mustStrided(t *testing.T, shape Shape, stride Stride) Layout {
	t.Helper()
	l, err := NewStridedLayout(shape, stride)
	require.NoError(t, err)
	return l
}

func TestNewLayoutIsContiguous(t *testing.T) {
	shapes := []Shape{{1}, {5}, {2, 3}, {4, 1, 3}, {2, 3, 4, 5}, {7, 1}, {3, 0, 2}}
	for _, s := range shapes {
		l := mustLayout(t, s)
		assert.Equal(t, 1, l.Stride(l.Rank()-1), "shape %v", s)
		assert.True(t, l.Contiguous(), "shape %v", s)
		assert.True(t, l.LastContiguous(), "shape %v", s)
		assert.Equal(t, s.NumElements(), l.Size())
		for i := 0; i+1 < l.Rank(); i++ {
			assert.Equal(t, l.Stride(i+1)*l.Dim(i+1), l.Stride(i))
		}
	}
}

func TestLayoutRankZero(t *testing.T) {
	l := mustLayout(t, Shape{})
	assert.Equal(t, 0, l.Rank())
	assert.Equal(t, 1, l.Size())
	assert.True(t, l.Contiguous())
	assert.True(t, l.LastContiguous())

	off, err := l.Index()
	require.NoError(t, err)
	assert.Equal(t, 0, off)
}

func TestNewLayoutErrors(t *testing.T) {
	_, err := NewLayout(Shape{2, -3})
	require.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewStridedLayout(Shape{2, 3}, Stride{1})
	require.ErrorIs(t, err, ErrRankMismatch)
}

func TestLayoutCopiesInputs(t *testing.T) {
	shape := Shape{2, 3}
	stride := Stride{1, 2}
	l := mustStrided(t, shape, stride)
	shape[0], stride[0] = 9, 9
	assert.Equal(t, Shape{2, 3}, l.Shape())
	assert.Equal(t, Stride{1, 2}, l.Strides())

	got := l.Shape()
	got[1] = 42
	assert.Equal(t, 3, l.Dim(1))
}

func TestLayoutContiguity(t *testing.T) {
	transposed := mustStrided(t, Shape{2, 3}, Stride{1, 2})
	assert.False(t, transposed.Contiguous())
	assert.False(t, transposed.LastContiguous())

	padded := mustStrided(t, Shape{2, 3}, Stride{4, 1})
	assert.False(t, padded.Contiguous())
	assert.True(t, padded.LastContiguous())
}

func TestLayoutIndex(t *testing.T) {
	l := mustStrided(t, Shape{2, 3, 4}, Stride{12, 4, 1})
	off, err := l.Index(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 23, off)

	neg := mustStrided(t, Shape{3}, Stride{-2})
	off, err = neg.Index(2)
	require.NoError(t, err)
	assert.Equal(t, -4, off)
}

func TestLayoutIndexErrors(t *testing.T) {
	l := mustLayout(t, Shape{2, 3})

	_, err := l.Index(1)
	require.ErrorIs(t, err, ErrRankMismatch)

	_, err = l.Index(1, 2, 0)
	require.ErrorIs(t, err, ErrRankMismatch)

	_, err = l.Index(2, 0)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = l.Index(0, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestLayoutConformable(t *testing.T) {
	a := mustLayout(t, Shape{2, 3})
	b := mustStrided(t, Shape{2, 3}, Stride{1, 2})
	c := mustLayout(t, Shape{3, 2})
	assert.True(t, a.Conformable(b))
	assert.False(t, a.Conformable(c))
	assert.True(t, a.ConformableShape(Shape{2, 3}))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(mustLayout(t, Shape{2, 3})))
}

func TestLayoutBroadcastShape(t *testing.T) {
	l := mustLayout(t, Shape{3, 1})
	got, err := l.BroadcastShape(Shape{4, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, Shape{4, 3, 5}, got)

	_, err = l.BroadcastShape(Shape{2, 5})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestLayoutBroadcastTo(t *testing.T) {
	l := mustLayout(t, Shape{3, 1})
	b, err := l.BroadcastTo(Shape{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3, 4}, b.Shape())
	assert.Equal(t, Stride{0, 1, 0}, b.Strides())

	// Every index along an expanded axis lands on the same element.
	o1, _ := b.Index(0, 2, 0)
	o2, _ := b.Index(1, 2, 3)
	assert.Equal(t, o1, o2)

	// The receiver is untouched.
	assert.Equal(t, Shape{3, 1}, l.Shape())
}

func TestLayoutBroadcastToErrors(t *testing.T) {
	l := mustLayout(t, Shape{3, 2})

	_, err := l.BroadcastTo(Shape{2})
	require.ErrorIs(t, err, ErrRankMismatch)

	_, err = l.BroadcastTo(Shape{4, 2})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestLayoutSwapAxes(t *testing.T) {
	l := mustLayout(t, Shape{2, 3, 4})
	s, err := l.SwapAxes(0, 2)
	require.NoError(t, err)
	assert.Equal(t, Shape{4, 3, 2}, s.Shape())
	assert.Equal(t, Stride{1, 4, 12}, s.Strides())

	same, err := l.SwapAxes(1, 1)
	require.NoError(t, err)
	assert.True(t, same.Equal(l))

	_, err = l.SwapAxes(0, 3)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestLayoutSubRange(t *testing.T) {
	l := mustLayout(t, Shape{4, 5, 6}) // strides 30, 6, 1

	sub, off, err := l.SubRange(Span(1, 3), Point(2), From(4))
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, sub.Shape())
	assert.Equal(t, Stride{30, 1}, sub.Strides())
	assert.Equal(t, 1*30+2*6+4, off)

	full, off, err := l.SubRange(All(), All(), All())
	require.NoError(t, err)
	assert.True(t, full.Equal(l))
	assert.Equal(t, 0, off)

	scalar, off, err := l.SubRange(Point(3), Point(4), Point(5))
	require.NoError(t, err)
	assert.Equal(t, 0, scalar.Rank())
	assert.Equal(t, 1, scalar.Size())
	assert.Equal(t, 3*30+4*6+5, off)
}

func TestLayoutSubRangeErrors(t *testing.T) {
	l := mustLayout(t, Shape{4, 5})

	tests := []struct {
		name   string
		ranges []Range
		want   error
	}{
		{"too few ranges", []Range{All()}, ErrRankMismatch},
		{"start at extent", []Range{Span(4, 5), All()}, ErrOutOfRange},
		{"point past end", []Range{All(), Point(5)}, ErrOutOfRange},
		{"negative start", []Range{Span(-1, 2), All()}, ErrOutOfRange},
		{"end past extent", []Range{Span(1, 6), All()}, ErrOutOfRange},
		{"reversed", []Range{Span(3, 1), All()}, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := l.SubRange(tt.ranges...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLayoutCompact(t *testing.T) {
	assert.True(t, mustLayout(t, Shape{3, 4}).Compact())
	assert.True(t, mustStrided(t, Shape{3, 4}, Stride{1, 3}).Compact())
	assert.True(t, mustStrided(t, Shape{3, 4}, Stride{-4, 1}).Compact())
	assert.False(t, mustStrided(t, Shape{3, 4}, Stride{5, 1}).Compact())
	assert.False(t, mustStrided(t, Shape{3, 4}, Stride{0, 1}).Compact())

	lo, hi := mustStrided(t, Shape{3, 4}, Stride{-4, 1}).Span()
	assert.Equal(t, -8, lo)
	assert.Equal(t, 3, hi)
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "[2 3]:[3 1]", mustLayout(t, Shape{2, 3}).String())
}

func TestFixedLayout(t *testing.T) {
	f, err := NewFixedLayout[R2](Shape{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, f.Rank())
	assert.Equal(t, 12, f.Size())
	assert.True(t, f.Contiguous())

	_, err = NewFixedLayout[R3](Shape{3, 4})
	require.ErrorIs(t, err, ErrRankMismatch)

	d := f.Dynamic()
	back, err := AsFixedLayout[R2](d)
	require.NoError(t, err)
	assert.True(t, back.Equal(f.Layout))

	_, err = AsFixedLayout[R1](d)
	require.ErrorIs(t, err, ErrRankMismatch)
}

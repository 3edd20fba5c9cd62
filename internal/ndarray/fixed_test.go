package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFixed(t *testing.T) {
	m := grid(t, 3, 4)

	f, err := AsFixedMut[R2](m)
	require.NoError(t, err)
	assert.Equal(t, 12.0, At2(f.ReadOnly(), 1, 2))

	*Ptr2(f, 2, 3) = -1
	assert.Equal(t, -1.0, m.At(2, 3))

	_, err = AsFixed[R3](m.ReadOnly())
	require.ErrorIs(t, err, ErrRankMismatch)

	assert.Equal(t, 2, f.ReadOnly().FixedLayout().Rank())
	assert.True(t, f.Dynamic().Layout().Equal(m.Layout()))
}

func TestFixedSubView(t *testing.T) {
	m := grid(t, 3, 4)
	f, err := AsFixed[R2](m.ReadOnly())
	require.NoError(t, err)

	row, err := FixedSubView[R1](f, Point(1), All())
	require.NoError(t, err)
	assert.Equal(t, 13.0, At1(row, 3))

	block, err := FixedSubView[R2](f, Span(1, 3), Span(0, 2))
	require.NoError(t, err)
	assert.Equal(t, 21.0, At2(block, 1, 1))

	_, err = FixedSubView[R2](f, Point(1), All())
	require.ErrorIs(t, err, ErrRankMismatch)

	_, err = FixedSubView[R1](f, Point(5), All())
	require.ErrorIs(t, err, ErrOutOfRange)

	scalar, err := FixedSubView[R0](f, Point(2), Point(2))
	require.NoError(t, err)
	assert.Equal(t, 22.0, scalar.At())
}

func TestFixedMutSubView(t *testing.T) {
	m, err := New[int64](Shape{2, 3, 4})
	require.NoError(t, err)
	f, err := AsFixedMut[R3](m)
	require.NoError(t, err)

	plane, err := FixedMutSubView[R2](f, Point(1), All(), All())
	require.NoError(t, err)
	*Ptr2(plane, 2, 3) = 5
	assert.Equal(t, int64(5), m.At(1, 2, 3))
	assert.Equal(t, int64(5), At3(f.ReadOnly(), 1, 2, 3))

	line, err := FixedMutSubView[R1](plane, Point(0), All())
	require.NoError(t, err)
	*Ptr1(line, 1) = 9
	assert.Equal(t, int64(9), *Ptr3(f, 1, 0, 1))

	_, err = FixedMutSubView[R3](f, Point(0), All(), All())
	require.ErrorIs(t, err, ErrRankMismatch)
}

func TestFixedViewsInApply(t *testing.T) {
	a, err := New[float64](Shape{2, 2})
	require.NoError(t, err)
	fa, err := AsFixedMut[R2](a)
	require.NoError(t, err)
	b, err := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)
	fb, err := AsFixed[R2](b)
	require.NoError(t, err)

	require.NoError(t, Apply2(func(d *float64, s float64) { *d = s * s }, 0, fa.Elems(), fb.Elems()))
	assert.Equal(t, []float64{1, 4, 9, 16}, a.Data())
}

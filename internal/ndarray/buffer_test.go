package ndarray

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/strided/internal/alloc"
)

func TestBorrowedBuffer(t *testing.T) {
	data := []int64{1, 2, 3}
	b := Borrow(data)
	assert.Equal(t, Borrowed, b.Ownership())
	assert.Equal(t, 3, b.Len())
	assert.True(t, b.Writable())
	assert.Equal(t, 0, b.RefCount())
	assert.False(t, b.IsUnique())

	s := b.Share()
	assert.Equal(t, Shared, s.Ownership())
	assert.False(t, s.Writable())
	assert.Equal(t, 0, s.RefCount())
	b.Data()[0] = 10
	assert.Equal(t, int64(10), s.Data()[0])

	b.Release()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, int64(10), data[0], "releasing a borrowed handle leaves the data alone")
}

func TestAllocatedBuffer(t *testing.T) {
	b := Allocate[float32](100)
	assert.Equal(t, Owned, b.Ownership())
	assert.Equal(t, 100, b.Len())
	assert.True(t, b.IsUnique())
	for _, x := range b.Data() {
		assert.Zero(t, x)
	}
	assert.True(t, alloc.IsAligned(unsafe.Pointer(&b.Data()[0])))

	s := b.Share()
	assert.Equal(t, Shared, s.Ownership())
	assert.False(t, s.Writable())
	assert.Equal(t, 2, b.RefCount())
	assert.False(t, b.IsUnique())
	assert.True(t, b.Writable(), "the owner stays writable after sharing")

	s.Release()
	assert.Equal(t, 1, b.RefCount())
	b.Release()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.RefCount())
}

func TestUninitializedBufferLength(t *testing.T) {
	b := AllocateUninitialized[complex128](7)
	defer b.Release()
	assert.Equal(t, 7, b.Len())
	assert.Equal(t, Owned, b.Ownership())
}

func TestEmptyBuffer(t *testing.T) {
	b := Allocate[float64](0)
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Data())
	b.Release()
}

func TestBufferAssign(t *testing.T) {
	a := Allocate[float64](3)
	b := Allocate[float64](5)
	b.Data()[4] = 42

	keep := b.Share()
	a.Assign(b)
	assert.Equal(t, 5, a.Len())
	assert.Equal(t, 42.0, a.Data()[4])
	assert.Equal(t, Owned, a.Ownership())
	assert.Equal(t, 3, b.RefCount())

	a.Release()
	keep.Release()
	assert.Equal(t, 1, b.RefCount())
	b.Release()
}

func TestBufferAssignSelf(t *testing.T) {
	b := Allocate[int32](4)
	b.Assign(b)
	assert.Equal(t, 1, b.RefCount())
	assert.Equal(t, 4, b.Len())
	b.Release()
}

func TestBufferReleaseTwice(t *testing.T) {
	b := Allocate[uint8](64)
	other := b.Share()
	b.Release()
	b.Release()
	assert.Equal(t, 1, other.RefCount())
	other.Release()
}

func TestBufferCopiesReleaseOneShare(t *testing.T) {
	b := Allocate[float64](16)
	s := b.Share()
	s2 := s
	s.Release()
	s2.Release()
	assert.Equal(t, 1, b.RefCount(), "copies of one share drop it once")
	assert.True(t, b.IsUnique())

	r := b.retain()
	r2 := r
	r2.Release()
	r.Release()
	assert.Equal(t, 1, b.RefCount())
	b.Release()
}

func TestViewCopiesDoNotRecycleLiveStorage(t *testing.T) {
	m, err := New[float64](Shape{16})
	require.NoError(t, err)
	r := m.ReadOnly()
	r2 := r
	r.Release()
	r2.Release()
	require.Equal(t, 1, m.Buffer().RefCount())

	// A same-sized allocation must not alias m's storage.
	for i := 0; i < 8; i++ {
		n, err := New[float64](Shape{16})
		require.NoError(t, err)
		n.Set(42, 0)
		assert.NotSame(t, &m.Data()[0], &n.Data()[0])
	}
	assert.Equal(t, 0.0, m.At(0))
}

func TestFlexibleSubarrayOutlivesRelease(t *testing.T) {
	m, err := New[float64](Shape{2, 4})
	require.NoError(t, err)
	var kept []MutView[float64]
	require.NoError(t, Flexible1(func(row MutView[float64]) {
		kept = append(kept, row)
	}, 1, m.Keep(1)))
	for i := range kept {
		kept[i].Release()
	}
	assert.Equal(t, 1, m.Buffer().RefCount())

	n, err := New[float64](Shape{2, 4})
	require.NoError(t, err)
	n.Set(7, 0, 0)
	assert.Equal(t, 0.0, m.At(0, 0))
}

func TestOwnershipString(t *testing.T) {
	assert.Equal(t, "borrowed", Borrowed.String())
	assert.Equal(t, "shared", Shared.String())
	assert.Equal(t, "owned", Owned.String())
	assert.Equal(t, "unknown", Ownership(9).String())
}

type celsius float64

func TestDataTypeOf(t *testing.T) {
	assert.Equal(t, Float32, DataTypeOf[float32]())
	assert.Equal(t, Float64, DataTypeOf[celsius]())
	assert.Equal(t, Complex128, DataTypeOf[complex128]())
	assert.Equal(t, Bool, DataTypeOf[bool]())

	for _, dt := range []DataType{Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64, Complex64, Complex128} {
		assert.NotEqual(t, "unknown", dt.String())
	}
	assert.Equal(t, 8, Complex64.Size())
	assert.Equal(t, elemSize[complex64](), Complex64.Size())
	assert.Equal(t, elemSize[celsius](), Float64.Size())
	assert.Panics(t, func() { _ = Invalid.Size() })
}

func TestReleasedStorageIsRecycled(t *testing.T) {
	before := alloc.ReadStats()
	m, err := New[float64](Shape{1000})
	require.NoError(t, err)
	m.Release()
	after := alloc.ReadStats()
	assert.Greater(t, after.Recycled, before.Recycled)
}

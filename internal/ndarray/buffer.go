package ndarray

import (
	"sync/atomic"
	"unsafe"

	"github.com/born-ml/strided/internal/alloc"
)

// Ownership tells who is responsible for a buffer's storage.
type Ownership int

// Ownership modes.
const (
	// Borrowed storage belongs to the caller and is never reference counted.
	// The caller must keep it alive for as long as any view uses it.
	Borrowed Ownership = iota
	// Shared is a read-only handle, either a share of reference-counted
	// storage or a read-only alias of borrowed memory.
	Shared
	// Owned is a writable handle on reference-counted storage allocated
	// by this package.
	Owned
)

// String returns a human-readable ownership name.
func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Shared:
		return "shared"
	case Owned:
		return "owned"
	default:
		return "unknown"
	}
}

// storage is a reference-counted block from the allocator.
// It goes back to the allocator when the count drops to zero.
type storage struct {
	bytes    []byte
	refCount atomic.Int32
}

func newStorage(nbytes int, zero bool) *storage {
	st := &storage{bytes: alloc.Get(nbytes, zero)}
	st.refCount.Store(1)
	return st
}

// release decrements the reference count and recycles the block if it reaches 0.
func (st *storage) release() {
	if st.refCount.Add(-1) == 0 {
		b := st.bytes
		st.bytes = nil
		alloc.Put(b)
	}
}

// share is one counted reference to a storage block. Every copy of a handle
// points at the same share, so the reference is dropped at most once no
// matter how many copies are released.
type share struct {
	st       *storage
	released atomic.Bool
}

// acquire counts a new reference to st and returns its share.
func acquire(st *storage) *share {
	st.refCount.Add(1)
	return &share{st: st}
}

func (s *share) drop() {
	if s.released.CompareAndSwap(false, true) {
		s.st.release()
	}
}

// Buffer is a handle on a contiguous block of T together with its ownership
// mode. Handles are small values. Copies of a handle stand for the same
// share: releasing any number of them drops that share once. Use Share or
// the view constructors to take an additional share.
type Buffer[T Element] struct {
	ref  *share // nil when nothing is counted
	data []T
	mode Ownership
}

// Borrow wraps caller-owned memory. Nothing is copied and nothing is counted.
func Borrow[T Element](data []T) Buffer[T] {
	return Buffer[T]{data: data, mode: Borrowed}
}

// Allocate returns n zero-valued elements of reference-counted storage.
func Allocate[T Element](n int) Buffer[T] {
	return allocate[T](n, true)
}

// AllocateUninitialized is Allocate without clearing: the contents are
// unspecified and must be fully written before they are read.
func AllocateUninitialized[T Element](n int) Buffer[T] {
	return allocate[T](n, false)
}

func allocate[T Element](n int, zero bool) Buffer[T] {
	st := newStorage(n*elemSize[T](), zero)
	var data []T
	if n > 0 {
		//nolint:gosec // unsafe.Slice for zero-copy typed access, the block holds n*sizeof(T) bytes
		data = unsafe.Slice((*T)(unsafe.Pointer(&st.bytes[0])), n)
	}
	return Buffer[T]{ref: &share{st: st}, data: data, mode: Owned}
}

// Len returns the number of elements in the buffer.
func (b Buffer[T]) Len() int { return len(b.data) }

// Ownership returns the handle's ownership mode.
func (b Buffer[T]) Ownership() Ownership { return b.mode }

// Writable reports whether views built on this handle may write.
func (b Buffer[T]) Writable() bool { return b.mode != Shared }

// Data returns the whole element slice.
// WARNING: the slice of a Shared handle must not be modified.
func (b Buffer[T]) Data() []T { return b.data }

// RefCount returns the number of live shares of the storage (0 when nothing
// is counted, e.g. for borrowed memory).
func (b Buffer[T]) RefCount() int {
	if b.ref == nil {
		return 0
	}
	return int(b.ref.st.refCount.Load())
}

// IsUnique returns true if this is the only share of the storage.
// Borrowed buffers are never unique.
func (b Buffer[T]) IsUnique() bool {
	return b.RefCount() == 1
}

// Share takes a new read-only share of the storage. Sharing uncounted
// memory yields a read-only handle that counts nothing.
func (b Buffer[T]) Share() Buffer[T] {
	if b.ref == nil {
		return b.freeze()
	}
	return Buffer[T]{ref: acquire(b.ref.st), data: b.data, mode: Shared}
}

// retain takes a new share with the same ownership mode.
func (b Buffer[T]) retain() Buffer[T] {
	if b.ref != nil {
		b.ref = acquire(b.ref.st)
	}
	return b
}

// uncounted returns a handle on the same memory and mode that holds no share.
func (b Buffer[T]) uncounted() Buffer[T] {
	b.ref = nil
	return b
}

// freeze marks the handle read-only.
func (b Buffer[T]) freeze() Buffer[T] {
	b.mode = Shared
	return b
}

// Assign drops this handle's share and rebinds it to other's storage,
// taking a share of it. No element data is copied.
func (b *Buffer[T]) Assign(other Buffer[T]) {
	other = other.retain()
	b.Release()
	*b = other
}

// Release gives up this handle's share. The storage is recycled once every
// share has been released; unreleased storage is left to the garbage
// collector. The handle is empty afterwards. Releasing another copy of the
// same handle is a no-op.
func (b *Buffer[T]) Release() {
	if b.ref != nil {
		b.ref.drop()
	}
	*b = Buffer[T]{}
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"log/slog"

	"github.com/born-ml/strided/internal/alloc"
	"github.com/born-ml/strided/internal/ndarray"
	"github.com/born-ml/strided/internal/parallel"
)

// Type aliases for public API

// Element is the constraint for array element types: booleans and the
// fixed-size numeric types, including named types based on them.
type Element = ndarray.Element

// DataType represents the runtime element type of an array.
type DataType = ndarray.DataType

// Data type constants.
const (
	Bool       DataType = ndarray.Bool
	Int8       DataType = ndarray.Int8
	Int16      DataType = ndarray.Int16
	Int32      DataType = ndarray.Int32
	Int64      DataType = ndarray.Int64
	Uint8      DataType = ndarray.Uint8
	Uint16     DataType = ndarray.Uint16
	Uint32     DataType = ndarray.Uint32
	Uint64     DataType = ndarray.Uint64
	Float32    DataType = ndarray.Float32
	Float64    DataType = ndarray.Float64
	Complex64  DataType = ndarray.Complex64
	Complex128 DataType = ndarray.Complex128
)

// Shape holds the extent of every axis.
// Example: Shape{2, 3, 4} is a 2×3×4 array.
type Shape = ndarray.Shape

// Stride holds the element step of every axis. Strides may be negative or 0.
type Stride = ndarray.Stride

// Layout is an immutable shape/stride descriptor.
type Layout = ndarray.Layout

// Range selects part of one axis, see All, Span, From and Point.
type Range = ndarray.Range

// End as a Range's Hi means "to the end of the axis".
const End = ndarray.End

// Ownership is a buffer handle's ownership mode.
type Ownership = ndarray.Ownership

// Ownership modes.
const (
	Borrowed Ownership = ndarray.Borrowed
	Shared   Ownership = ndarray.Shared
	Owned    Ownership = ndarray.Owned
)

// Buffer is a typed storage handle.
type Buffer[T Element] = ndarray.Buffer[T]

// View is a read-only strided array.
type View[T Element] = ndarray.View[T]

// MutView is a writable strided array.
type MutView[T Element] = ndarray.MutView[T]

// Rank is implemented by the rank markers R0..R5.
type Rank = ndarray.Rank

// Rank markers for the fixed-rank types.
type (
	R0 = ndarray.R0
	R1 = ndarray.R1
	R2 = ndarray.R2
	R3 = ndarray.R3
	R4 = ndarray.R4
	R5 = ndarray.R5
)

// FixedLayout is a Layout with its rank in the type.
type FixedLayout[R Rank] = ndarray.FixedLayout[R]

// FixedView is a read-only View with its rank in the type.
type FixedView[T Element, R Rank] = ndarray.FixedView[T, R]

// FixedMutView is a writable MutView with its rank in the type.
type FixedMutView[T Element, R Rank] = ndarray.FixedMutView[T, R]

// Plan is a traversal shared by conformable arrays.
type Plan = ndarray.Plan

// Elems is an operand of the Apply functions, see View.Elems and MutView.Elems.
type Elems[T Element, E any] = ndarray.Elems[T, E]

// Kept is an operand of the Flexible functions, see View.Keep and MutView.Keep.
type Kept[T Element, V any] = ndarray.Kept[T, V]

// PanicError carries a callback panic from a worker back to the caller.
type PanicError = parallel.PanicError

// AllocStats is a snapshot of the storage allocator counters.
type AllocStats = alloc.Stats

// Error kinds.
var (
	ErrRankMismatch     = ndarray.ErrRankMismatch
	ErrShapeMismatch    = ndarray.ErrShapeMismatch
	ErrOutOfRange       = ndarray.ErrOutOfRange
	ErrNonCompactLayout = ndarray.ErrNonCompactLayout
	ErrInvalidShape     = ndarray.ErrInvalidShape
	ErrReadOnly         = ndarray.ErrReadOnly
)

// EnvNumThreads names the environment variable overriding the default
// worker count.
const EnvNumThreads = parallel.EnvNumThreads

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Element]() DataType {
	return ndarray.DataTypeOf[T]()
}

// NewLayout returns the C-contiguous layout of shape.
func NewLayout(shape Shape) (Layout, error) {
	return ndarray.NewLayout(shape)
}

// NewStridedLayout returns a layout with explicit strides.
func NewStridedLayout(shape Shape, stride Stride) (Layout, error) {
	return ndarray.NewStridedLayout(shape, stride)
}

// NewFixedLayout returns the C-contiguous layout of a rank-R shape.
func NewFixedLayout[R Rank](shape Shape) (FixedLayout[R], error) {
	return ndarray.NewFixedLayout[R](shape)
}

// BroadcastShapes returns the common broadcast shape of a and b.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return ndarray.BroadcastShapes(a, b)
}

// NewPlan derives the traversal plan for conformable layouts.
func NewPlan(layouts ...Layout) (Plan, error) {
	return ndarray.NewPlan(layouts...)
}

// All selects a whole axis.
func All() Range { return ndarray.All() }

// Span selects [lo, hi) of an axis.
func Span(lo, hi int) Range { return ndarray.Span(lo, hi) }

// From selects [lo, end) of an axis.
func From(lo int) Range { return ndarray.From(lo) }

// Point selects one index and drops the axis.
func Point(i int) Range { return ndarray.Point(i) }

// Borrow wraps caller-owned memory without copying.
func Borrow[T Element](data []T) Buffer[T] {
	return ndarray.Borrow(data)
}

// Allocate returns n zero-valued elements of reference-counted storage.
func Allocate[T Element](n int) Buffer[T] {
	return ndarray.Allocate[T](n)
}

// AllocateUninitialized is Allocate without clearing.
func AllocateUninitialized[T Element](n int) Buffer[T] {
	return ndarray.AllocateUninitialized[T](n)
}

// NewView builds a read-only view of buf.
func NewView[T Element](buf Buffer[T], layout Layout, offset int) (View[T], error) {
	return ndarray.NewView(buf, layout, offset)
}

// NewMutView builds a writable view of buf.
func NewMutView[T Element](buf Buffer[T], layout Layout, offset int) (MutView[T], error) {
	return ndarray.NewMutView(buf, layout, offset)
}

// FromSlice returns a C-contiguous read-only view of data.
func FromSlice[T Element](data []T, shape Shape) (View[T], error) {
	return ndarray.FromSlice(data, shape)
}

// FromStridedSlice returns a read-only view of data with explicit strides.
// Element 0 is data[-lo], where lo is the most negative reachable offset.
func FromStridedSlice[T Element](data []T, shape Shape, stride Stride) (View[T], error) {
	return ndarray.FromStridedSlice(data, shape, stride)
}

// MutFromSlice returns a C-contiguous writable view of data.
func MutFromSlice[T Element](data []T, shape Shape) (MutView[T], error) {
	return ndarray.MutFromSlice(data, shape)
}

// MutFromStridedSlice returns a writable view of data with explicit strides.
// Element 0 is placed as in FromStridedSlice.
func MutFromStridedSlice[T Element](data []T, shape Shape, stride Stride) (MutView[T], error) {
	return ndarray.MutFromStridedSlice(data, shape, stride)
}

// New returns a zero-filled C-contiguous array.
func New[T Element](shape Shape) (MutView[T], error) {
	return ndarray.New[T](shape)
}

// NewUninitialized returns a C-contiguous array with unspecified contents.
func NewUninitialized[T Element](shape Shape) (MutView[T], error) {
	return ndarray.NewUninitialized[T](shape)
}

// NewStrided returns an uninitialized array with a compact custom layout.
func NewStrided[T Element](shape Shape, stride Stride) (MutView[T], error) {
	return ndarray.NewStrided[T](shape, stride)
}

// Full returns an array with every element set to value.
func Full[T Element](shape Shape, value T) (MutView[T], error) {
	return ndarray.Full(shape, value)
}

// BuildUniform returns a read-only array of the given shape storing value once.
func BuildUniform[T Element](shape Shape, value T) (View[T], error) {
	return ndarray.BuildUniform(shape, value)
}

// BuildNoncritical returns a C-ordered array whose strides avoid multiples
// of CriticalStride.
func BuildNoncritical[T Element](shape Shape, uninitialized bool) (MutView[T], error) {
	return ndarray.BuildNoncritical[T](shape, uninitialized)
}

// CriticalStride returns the byte stride BuildNoncritical avoids.
func CriticalStride() int {
	return ndarray.CriticalStride()
}

// AsFixed narrows a view to rank R.
func AsFixed[R Rank, T Element](v View[T]) (FixedView[T, R], error) {
	return ndarray.AsFixed[R](v)
}

// AsFixedMut narrows a writable view to rank R.
func AsFixedMut[R Rank, T Element](m MutView[T]) (FixedMutView[T, R], error) {
	return ndarray.AsFixedMut[R](m)
}

// FixedSubView slices a fixed-rank view into one of rank R2.
func FixedSubView[R2 Rank, T Element, R Rank](v FixedView[T, R], ranges ...Range) (FixedView[T, R2], error) {
	return ndarray.FixedSubView[R2](v, ranges...)
}

// FixedMutSubView slices a fixed-rank writable view into one of rank R2.
func FixedMutSubView[R2 Rank, T Element, R Rank](m FixedMutView[T, R], ranges ...Range) (FixedMutView[T, R2], error) {
	return ndarray.FixedMutSubView[R2](m, ranges...)
}

// SetLogger routes the diagnostics of every internal package to l.
// A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	ndarray.SetLogger(l)
	parallel.SetLogger(l)
	alloc.SetLogger(l)
}

// ReadAllocStats returns the storage allocator counters.
func ReadAllocStats() AllocStats {
	return alloc.ReadStats()
}

// At1 returns v[i].
func At1[T Element](v FixedView[T, R1], i int) T { return ndarray.At1(v, i) }

// At2 returns v[i, j].
func At2[T Element](v FixedView[T, R2], i, j int) T { return ndarray.At2(v, i, j) }

// At3 returns v[i, j, k].
func At3[T Element](v FixedView[T, R3], i, j, k int) T { return ndarray.At3(v, i, j, k) }

// Ptr1 returns a pointer to m[i].
func Ptr1[T Element](m FixedMutView[T, R1], i int) *T { return ndarray.Ptr1(m, i) }

// Ptr2 returns a pointer to m[i, j].
func Ptr2[T Element](m FixedMutView[T, R2], i, j int) *T { return ndarray.Ptr2(m, i, j) }

// Ptr3 returns a pointer to m[i, j, k].
func Ptr3[T Element](m FixedMutView[T, R3], i, j, k int) *T { return ndarray.Ptr3(m, i, j, k) }

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides strided multidimensional arrays and a parallel
// elementwise apply engine.
//
// # Overview
//
// An array is a Layout (shape and strides, in elements) over a Buffer,
// starting at a base offset. Views never copy: slicing, transposing and
// broadcasting only produce new layouts over the same buffer.
//
//   - Layout, FixedLayout: shape/stride descriptors
//   - Buffer: typed storage that is Borrowed, Shared (read-only) or Owned
//   - View, MutView: read-only and writable arrays
//   - FixedView, FixedMutView: the same with the rank in the type
//   - Apply1..Apply4: call a function once per element of 1 to 4 arrays
//   - Flexible1..Flexible3: call a function once per leading index, passing
//     sub-arrays for the kept trailing axes
//
// # Basic Usage
//
//	import "github.com/born-ml/strided/ndarray"
//
//	func main() {
//	    a, _ := ndarray.New[float64](ndarray.Shape{1000, 1000})
//	    b, _ := ndarray.BuildUniform(ndarray.Shape{1000, 1000}, 2.0)
//
//	    // a += b, using every configured worker
//	    err := ndarray.Apply2(func(x *float64, y float64) { *x += y }, 0, a.Elems(), b.Elems())
//
//	    // per-row maximum
//	    rowMax, _ := ndarray.New[float64](ndarray.Shape{1000})
//	    err = ndarray.Flexible2(func(row ndarray.View[float64], out ndarray.MutView[float64]) {
//	        m := row.At(0)
//	        for j := 1; j < row.Size(); j++ {
//	            m = max(m, row.At(j))
//	        }
//	        out.Set(m)
//	    }, 0, a.ReadOnly().Keep(1), rowMax.Keep(0))
//	}
//
// # Parallelism
//
// The apply functions take a worker count; 0 selects the default, which is
// the number of CPUs or the value of the STRIDED_NUM_THREADS environment
// variable. Work is split along the outermost iteration axis, so the
// callback must not rely on visiting order. A panic in the callback is
// re-raised on the calling goroutine as *PanicError.
//
// # Errors
//
// Constructors, slicing, broadcasting and the apply functions return errors
// wrapping one of ErrRankMismatch, ErrShapeMismatch, ErrOutOfRange,
// ErrNonCompactLayout, ErrInvalidShape or ErrReadOnly. The element accessors
// At, Set and Ptr panic with such an error instead.
package ndarray

// Package ndarray implements strided multidimensional arrays and a parallel
// elementwise apply engine.
//
// The building blocks are:
//   - Layout / FixedLayout: shape and stride descriptors
//   - Buffer: typed storage with Borrowed, Shared or Owned ownership
//   - View / MutView and their fixed-rank forms: a Layout over a Buffer
//   - Plan: the reduced traversal shared by several conformable arrays
//   - Apply1..Apply4 and Flexible1..Flexible3: the apply engine
//
// Failures are reported with errors wrapping one of the Err* sentinels.
// Element accessors (At, Set, Ptr) panic with such an error instead.
package ndarray

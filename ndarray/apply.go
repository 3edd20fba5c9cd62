// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import "github.com/born-ml/strided/internal/ndarray"

// Apply1 calls fn once per element of a. workers <= 0 selects the default.
func Apply1[A Element, EA any](fn func(EA), workers int, a Elems[A, EA]) error {
	return ndarray.Apply1(fn, workers, a)
}

// Apply2 calls fn once per index of two same-shaped arrays.
func Apply2[A, B Element, EA, EB any](fn func(EA, EB), workers int, a Elems[A, EA], b Elems[B, EB]) error {
	return ndarray.Apply2(fn, workers, a, b)
}

// Apply3 calls fn once per index of three same-shaped arrays.
func Apply3[A, B, C Element, EA, EB, EC any](fn func(EA, EB, EC), workers int,
	a Elems[A, EA], b Elems[B, EB], c Elems[C, EC]) error {
	return ndarray.Apply3(fn, workers, a, b, c)
}

// Apply4 calls fn once per index of four same-shaped arrays.
func Apply4[A, B, C, D Element, EA, EB, EC, ED any](fn func(EA, EB, EC, ED), workers int,
	a Elems[A, EA], b Elems[B, EB], c Elems[C, EC], d Elems[D, ED]) error {
	return ndarray.Apply4(fn, workers, a, b, c, d)
}

// Flexible1 calls fn once per leading index of a with the kept sub-array.
func Flexible1[A Element, VA any](fn func(VA), workers int, a Kept[A, VA]) error {
	return ndarray.Flexible1(fn, workers, a)
}

// Flexible2 is Flexible1 for two arrays with identical leading shapes.
func Flexible2[A, B Element, VA, VB any](fn func(VA, VB), workers int, a Kept[A, VA], b Kept[B, VB]) error {
	return ndarray.Flexible2(fn, workers, a, b)
}

// Flexible3 is Flexible1 for three arrays with identical leading shapes.
func Flexible3[A, B, C Element, VA, VB, VC any](fn func(VA, VB, VC), workers int,
	a Kept[A, VA], b Kept[B, VB], c Kept[C, VC]) error {
	return ndarray.Flexible3(fn, workers, a, b, c)
}

// Fill sets every element of dst to value.
func Fill[T Element](dst MutView[T], value T, workers int) error {
	return ndarray.Fill(dst, value, workers)
}

// Copy copies src into the same-shaped dst.
func Copy[T Element](dst MutView[T], src View[T], workers int) error {
	return ndarray.Copy(dst, src, workers)
}

// ToContiguous returns a C-contiguous copy of src.
func ToContiguous[T Element](src View[T], workers int) (MutView[T], error) {
	return ndarray.ToContiguous(src, workers)
}

package ndarray

import "github.com/pkg/errors"

// Kept is an operand of the Flexible functions: an array whose trailing keep
// axes are not iterated but handed to the callback as a sub-array of type V
// (View[T] or MutView[T]).
//
// Sub-arrays passed to the callback do not hold a share of the buffer, and
// releasing one is a no-op. They are valid as long as the operand's own view is.
type Kept[T Element, V any] struct {
	view View[T]
	keep int
	wrap func(View[T]) V
}

// Keep returns the view as a Flexible operand whose trailing k axes are
// passed to the callback as a read-only sub-view.
func (v View[T]) Keep(k int) Kept[T, View[T]] {
	return Kept[T, View[T]]{view: v, keep: k, wrap: func(s View[T]) View[T] { return s }}
}

// Keep returns the view as a Flexible operand whose trailing k axes are
// passed to the callback as a writable sub-view.
func (m MutView[T]) Keep(k int) Kept[T, MutView[T]] {
	return Kept[T, MutView[T]]{view: m.View, keep: k, wrap: func(s View[T]) MutView[T] { return MutView[T]{s} }}
}

// split validates the keep count and returns the iterated layout and the
// layout of the per-call sub-array.
func (k Kept[T, V]) split() (outer, inner Layout, err error) {
	if err := k.view.validate(); err != nil {
		return Layout{}, Layout{}, err
	}
	if k.keep < 0 || k.keep > k.view.Rank() {
		return Layout{}, Layout{}, errors.Wrapf(ErrRankMismatch,
			"cannot keep %d trailing axes of a rank %d array", k.keep, k.view.Rank())
	}
	outer, inner = k.view.layout.split(k.keep)
	return outer, inner, nil
}

// at builds the sub-array whose origin is at offset off.
func (k Kept[T, V]) at(inner Layout, off int) V {
	return k.wrap(View[T]{layout: inner, buf: k.view.buf.uncounted(), offset: off})
}

// Flexible1 calls fn once per index of the leading (non-kept) axes of a,
// passing the sub-array spanned by the kept trailing axes.
//
// Example:
//
//	// normalise every row of a (n, m) matrix
//	err := ndarray.Flexible1(func(row ndarray.MutView[float64]) { ... }, 0, m.Keep(1))
func Flexible1[A Element, VA any](fn func(VA), workers int, a Kept[A, VA]) error {
	oa, ia, err := a.split()
	if err != nil {
		return err
	}
	p, err := NewPlan(oa)
	if err != nil {
		return err
	}
	execute(p, []int{a.view.offset}, workers, func(offs []int, n int, steps []int) {
		pa, sa := offs[0], steps[0]
		for i := 0; i < n; i++ {
			fn(a.at(ia, pa))
			pa += sa
		}
	})
	return nil
}

// Flexible2 is Flexible1 for two arrays. The iterated (leading) shapes must
// agree; the kept parts may differ in rank and shape.
func Flexible2[A, B Element, VA, VB any](fn func(VA, VB), workers int, a Kept[A, VA], b Kept[B, VB]) error {
	oa, ia, err := a.split()
	if err != nil {
		return err
	}
	ob, ib, err := b.split()
	if err != nil {
		return err
	}
	p, err := NewPlan(oa, ob)
	if err != nil {
		return err
	}
	execute(p, []int{a.view.offset, b.view.offset}, workers, func(offs []int, n int, steps []int) {
		pa, pb := offs[0], offs[1]
		sa, sb := steps[0], steps[1]
		for i := 0; i < n; i++ {
			fn(a.at(ia, pa), b.at(ib, pb))
			pa += sa
			pb += sb
		}
	})
	return nil
}

// Flexible3 is Flexible1 for three arrays.
func Flexible3[A, B, C Element, VA, VB, VC any](fn func(VA, VB, VC), workers int,
	a Kept[A, VA], b Kept[B, VB], c Kept[C, VC]) error {
	oa, ia, err := a.split()
	if err != nil {
		return err
	}
	ob, ib, err := b.split()
	if err != nil {
		return err
	}
	oc, ic, err := c.split()
	if err != nil {
		return err
	}
	p, err := NewPlan(oa, ob, oc)
	if err != nil {
		return err
	}
	bases := []int{a.view.offset, b.view.offset, c.view.offset}
	execute(p, bases, workers, func(offs []int, n int, steps []int) {
		pa, pb, pc := offs[0], offs[1], offs[2]
		sa, sb, sc := steps[0], steps[1], steps[2]
		for i := 0; i < n; i++ {
			fn(a.at(ia, pa), b.at(ib, pb), c.at(ic, pc))
			pa += sa
			pb += sb
			pc += sc
		}
	})
	return nil
}

package ndarray

import "github.com/pkg/errors"

// Elems is an operand of the full-element Apply functions. E is what the
// callback receives per element: the value (T) for a read-only View, or a
// pointer (*T) for a MutView.
type Elems[T Element, E any] struct {
	view View[T]
	get  func(data []T, off int) E
}

// Elems returns the view as an Apply operand handing out element values.
func (v View[T]) Elems() Elems[T, T] {
	return Elems[T, T]{view: v, get: loadElem[T]}
}

// Elems returns the view as an Apply operand handing out element pointers.
func (m MutView[T]) Elems() Elems[T, *T] {
	return Elems[T, *T]{view: m.View, get: elemPtr[T]}
}

func loadElem[T Element](data []T, off int) T { return data[off] }

func elemPtr[T Element](data []T, off int) *T { return &data[off] }

// Apply1 calls fn once per element of a.
//
// workers <= 0 selects the configured default. With more than one worker the
// outermost iteration axis is split into disjoint ranges processed
// concurrently, so fn must not depend on visiting order or on shared mutable
// state. Apply returns after every call has finished.
//
// Example:
//
//	err := ndarray.Apply1(func(x *float64) { *x *= 2 }, 0, m.Elems())
func Apply1[A Element, EA any](fn func(EA), workers int, a Elems[A, EA]) error {
	if err := validateAll(a.view); err != nil {
		return err
	}
	p, err := NewPlan(a.view.layout)
	if err != nil {
		return err
	}
	da, ga := a.view.buf.data, a.get
	unit := p.LastContiguous()
	execute(p, []int{a.view.offset}, workers, func(offs []int, n int, steps []int) {
		oa := offs[0]
		if unit {
			for i := 0; i < n; i++ {
				fn(ga(da, oa+i))
			}
			return
		}
		sa := steps[0]
		for i := 0; i < n; i++ {
			fn(ga(da, oa))
			oa += sa
		}
	})
	return nil
}

// Apply2 calls fn once per index with the corresponding elements of a and b,
// which must have the same shape. The arrays may have unrelated strides.
//
// Example:
//
//	// dst += src
//	err := ndarray.Apply2(func(d *float64, s float64) { *d += s }, 4, dst.Elems(), src.Elems())
func Apply2[A, B Element, EA, EB any](fn func(EA, EB), workers int, a Elems[A, EA], b Elems[B, EB]) error {
	if err := validateAll(a.view, b.view); err != nil {
		return err
	}
	p, err := NewPlan(a.view.layout, b.view.layout)
	if err != nil {
		return err
	}
	da, ga := a.view.buf.data, a.get
	db, gb := b.view.buf.data, b.get
	unit := p.LastContiguous()
	execute(p, []int{a.view.offset, b.view.offset}, workers, func(offs []int, n int, steps []int) {
		oa, ob := offs[0], offs[1]
		if unit {
			for i := 0; i < n; i++ {
				fn(ga(da, oa+i), gb(db, ob+i))
			}
			return
		}
		sa, sb := steps[0], steps[1]
		for i := 0; i < n; i++ {
			fn(ga(da, oa), gb(db, ob))
			oa += sa
			ob += sb
		}
	})
	return nil
}

// Apply3 is Apply2 for three arrays.
func Apply3[A, B, C Element, EA, EB, EC any](fn func(EA, EB, EC), workers int,
	a Elems[A, EA], b Elems[B, EB], c Elems[C, EC]) error {
	if err := validateAll(a.view, b.view, c.view); err != nil {
		return err
	}
	p, err := NewPlan(a.view.layout, b.view.layout, c.view.layout)
	if err != nil {
		return err
	}
	da, ga := a.view.buf.data, a.get
	db, gb := b.view.buf.data, b.get
	dc, gc := c.view.buf.data, c.get
	unit := p.LastContiguous()
	bases := []int{a.view.offset, b.view.offset, c.view.offset}
	execute(p, bases, workers, func(offs []int, n int, steps []int) {
		oa, ob, oc := offs[0], offs[1], offs[2]
		if unit {
			for i := 0; i < n; i++ {
				fn(ga(da, oa+i), gb(db, ob+i), gc(dc, oc+i))
			}
			return
		}
		sa, sb, sc := steps[0], steps[1], steps[2]
		for i := 0; i < n; i++ {
			fn(ga(da, oa), gb(db, ob), gc(dc, oc))
			oa += sa
			ob += sb
			oc += sc
		}
	})
	return nil
}

// Apply4 is Apply2 for four arrays.
func Apply4[A, B, C, D Element, EA, EB, EC, ED any](fn func(EA, EB, EC, ED), workers int,
	a Elems[A, EA], b Elems[B, EB], c Elems[C, EC], d Elems[D, ED]) error {
	if err := validateAll(a.view, b.view, c.view, d.view); err != nil {
		return err
	}
	p, err := NewPlan(a.view.layout, b.view.layout, c.view.layout, d.view.layout)
	if err != nil {
		return err
	}
	da, ga := a.view.buf.data, a.get
	db, gb := b.view.buf.data, b.get
	dc, gc := c.view.buf.data, c.get
	dd, gd := d.view.buf.data, d.get
	unit := p.LastContiguous()
	bases := []int{a.view.offset, b.view.offset, c.view.offset, d.view.offset}
	execute(p, bases, workers, func(offs []int, n int, steps []int) {
		oa, ob, oc, od := offs[0], offs[1], offs[2], offs[3]
		if unit {
			for i := 0; i < n; i++ {
				fn(ga(da, oa+i), gb(db, ob+i), gc(dc, oc+i), gd(dd, od+i))
			}
			return
		}
		sa, sb, sc, sd := steps[0], steps[1], steps[2], steps[3]
		for i := 0; i < n; i++ {
			fn(ga(da, oa), gb(db, ob), gc(dc, oc), gd(dd, od))
			oa += sa
			ob += sb
			oc += sc
			od += sd
		}
	})
	return nil
}

type validator interface{ validate() error }

// validateAll checks every operand before any work is scheduled.
func validateAll(views ...validator) error {
	for i, v := range views {
		if err := v.validate(); err != nil {
			return errors.WithMessagef(err, "operand %d", i)
		}
	}
	return nil
}

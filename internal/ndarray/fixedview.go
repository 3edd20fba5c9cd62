package ndarray

// FixedView is a read-only View whose rank R is part of its type.
type FixedView[T Element, R Rank] struct {
	View[T]
}

// FixedMutView is a writable MutView whose rank R is part of its type.
type FixedMutView[T Element, R Rank] struct {
	MutView[T]
}

// AsFixed narrows a view to rank R, failing with ErrRankMismatch otherwise.
func AsFixed[R Rank, T Element](v View[T]) (FixedView[T, R], error) {
	if err := checkRank[R](v.Rank()); err != nil {
		return FixedView[T, R]{}, err
	}
	return FixedView[T, R]{v}, nil
}

// AsFixedMut narrows a writable view to rank R.
func AsFixedMut[R Rank, T Element](m MutView[T]) (FixedMutView[T, R], error) {
	if err := checkRank[R](m.Rank()); err != nil {
		return FixedMutView[T, R]{}, err
	}
	return FixedMutView[T, R]{m}, nil
}

// Dynamic returns the view in dynamic-rank form.
func (f FixedView[T, R]) Dynamic() View[T] { return f.View }

// FixedLayout returns the view's layout with its rank in the type.
func (f FixedView[T, R]) FixedLayout() FixedLayout[R] { return FixedLayout[R]{f.layout} }

// Dynamic returns the view in dynamic-rank form.
func (f FixedMutView[T, R]) Dynamic() MutView[T] { return f.MutView }

// ReadOnly returns a read-only alias of the same rank.
func (f FixedMutView[T, R]) ReadOnly() FixedView[T, R] {
	return FixedView[T, R]{f.MutView.ReadOnly()}
}

// FixedSubView slices v and checks that the result has rank R2, i.e. that
// exactly Rank()-R2 of the ranges are points.
func FixedSubView[R2 Rank, T Element, R Rank](v FixedView[T, R], ranges ...Range) (FixedView[T, R2], error) {
	if err := checkRank[R2](rankOf[R]() - countPoints(ranges)); err != nil {
		return FixedView[T, R2]{}, err
	}
	sub, err := v.View.SubView(ranges...)
	if err != nil {
		return FixedView[T, R2]{}, err
	}
	return FixedView[T, R2]{sub}, nil
}

// FixedMutSubView is FixedSubView for writable views.
func FixedMutSubView[R2 Rank, T Element, R Rank](m FixedMutView[T, R], ranges ...Range) (FixedMutView[T, R2], error) {
	if err := checkRank[R2](rankOf[R]() - countPoints(ranges)); err != nil {
		return FixedMutView[T, R2]{}, err
	}
	sub, err := m.MutView.SubView(ranges...)
	if err != nil {
		return FixedMutView[T, R2]{}, err
	}
	return FixedMutView[T, R2]{sub}, nil
}

func countPoints(ranges []Range) int {
	n := 0
	for _, r := range ranges {
		if r.IsPoint() {
			n++
		}
	}
	return n
}

// At1 returns v[i] with the index count checked at compile time.
func At1[T Element](v FixedView[T, R1], i int) T {
	return v.At(i)
}

// At2 returns v[i, j].
func At2[T Element](v FixedView[T, R2], i, j int) T {
	return v.At(i, j)
}

// At3 returns v[i, j, k].
func At3[T Element](v FixedView[T, R3], i, j, k int) T {
	return v.At(i, j, k)
}

// Ptr1 returns a pointer to m[i].
func Ptr1[T Element](m FixedMutView[T, R1], i int) *T {
	return m.Ptr(i)
}

// Ptr2 returns a pointer to m[i, j].
func Ptr2[T Element](m FixedMutView[T, R2], i, j int) *T {
	return m.Ptr(i, j)
}

// Ptr3 returns a pointer to m[i, j, k].
func Ptr3[T Element](m FixedMutView[T, R3], i, j, k int) *T {
	return m.Ptr(i, j, k)
}

package ndarray

// Fill sets every element of dst to value.
func Fill[T Element](dst MutView[T], value T, workers int) error {
	return Apply1(func(d *T) { *d = value }, workers, dst.Elems())
}

// Copy copies src into dst element by element. Both must have the same
// shape; their layouts are otherwise independent.
func Copy[T Element](dst MutView[T], src View[T], workers int) error {
	return Apply2(func(d *T, s T) { *d = s }, workers, dst.Elems(), src.Elems())
}

// ToContiguous returns a fresh C-contiguous copy of src.
func ToContiguous[T Element](src View[T], workers int) (MutView[T], error) {
	dst, err := NewUninitialized[T](src.Shape())
	if err != nil {
		return MutView[T]{}, err
	}
	if err := Copy(dst, src, workers); err != nil {
		dst.Release()
		return MutView[T]{}, err
	}
	return dst, nil
}

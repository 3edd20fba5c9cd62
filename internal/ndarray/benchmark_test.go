package ndarray

import (
	"fmt"
	"testing"
)

func benchArrays(b *testing.B, n int) (MutView[float64], View[float64], View[float64]) {
	b.Helper()
	dst, err := New[float64](Shape{n, n})
	if err != nil {
		b.Fatal(err)
	}
	src, err := FromSlice(iota64(n*n), Shape{n, n})
	if err != nil {
		b.Fatal(err)
	}
	tr, err := src.SwapAxes(0, 1)
	if err != nil {
		b.Fatal(err)
	}
	return dst, src, tr
}

func BenchmarkApply2(b *testing.B) {
	const n = 512
	dst, src, tr := benchArrays(b, n)
	add := func(d *float64, s float64) { *d += s }

	for _, workers := range []int{1, 0} {
		b.Run(fmt.Sprintf("contiguous/workers=%d", workers), func(b *testing.B) {
			b.SetBytes(int64(n * n * 16))
			for i := 0; i < b.N; i++ {
				_ = Apply2(add, workers, dst.Elems(), src.Elems())
			}
		})
		b.Run(fmt.Sprintf("transposed/workers=%d", workers), func(b *testing.B) {
			b.SetBytes(int64(n * n * 16))
			for i := 0; i < b.N; i++ {
				_ = Apply2(add, workers, dst.Elems(), tr.Elems())
			}
		})
	}
}

func BenchmarkFlexibleRows(b *testing.B) {
	const n = 512
	_, src, _ := benchArrays(b, n)
	sums, err := New[float64](Shape{n})
	if err != nil {
		b.Fatal(err)
	}
	rowSum := func(row View[float64], out MutView[float64]) {
		s := 0.0
		for j := 0; j < row.Size(); j++ {
			s += row.Raw(j)
		}
		out.Set(s)
	}

	for i := 0; i < b.N; i++ {
		_ = Flexible2(rowSum, 0, src.Keep(1), sums.Keep(0))
	}
}

func BenchmarkNoncritical(b *testing.B) {
	cols := CriticalStride() / 8
	plain, err := New[float64](Shape{256, cols})
	if err != nil {
		b.Fatal(err)
	}
	padded, err := BuildNoncritical[float64](Shape{256, cols}, false)
	if err != nil {
		b.Fatal(err)
	}
	for name, m := range map[string]MutView[float64]{"plain": plain, "noncritical": padded} {
		col, err := m.SwapAxes(0, 1)
		if err != nil {
			b.Fatal(err)
		}
		// Each call walks one column, touching one element per row.
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = Flexible1(func(c MutView[float64]) {
					for j := 0; j < c.Size(); j++ {
						c.Set(float64(j), j)
					}
				}, 1, col.Keep(1))
			}
		})
	}
}

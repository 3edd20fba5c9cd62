package ndarray

import "sync"

// defaultCriticalStride is the smallest byte stride treated as critical.
// Strides that are multiples of it make consecutive rows map onto the same
// cache sets and TLB entries.
const defaultCriticalStride = 4096

// noncriticalPad is the number of elements added to an axis whose stride
// would otherwise be critical.
const noncriticalPad = 3

var criticalStride = sync.OnceValue(func() int {
	return max(defaultCriticalStride, pageSize())
})

// CriticalStride returns the byte stride avoided by BuildNoncritical:
// 4096 or the OS page size, whichever is larger. It is always a power of two.
func CriticalStride() int {
	return criticalStride()
}

// noncriticalShape returns shape with every axis except the outermost padded
// so that no axis has a byte stride that is a multiple of crit. Axes are
// visited from the innermost outward; crit must be a power of two.
func noncriticalShape(shape Shape, elemSize, crit int) Shape {
	res := shape.Clone()
	stride := elemSize
	for ax := len(shape) - 1; ax > 0; ax-- {
		if (stride*shape[ax])&(crit-1) == 0 {
			res[ax] += noncriticalPad
		}
		stride *= res[ax]
	}
	return res
}

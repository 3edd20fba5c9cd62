//go:build !unix

package ndarray

func pageSize() int {
	return defaultCriticalStride
}

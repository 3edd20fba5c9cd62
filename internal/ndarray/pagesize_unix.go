//go:build unix

package ndarray

import "golang.org/x/sys/unix"

func pageSize() int {
	return unix.Getpagesize()
}

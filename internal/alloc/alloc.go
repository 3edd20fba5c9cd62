// Package alloc provides the aligned, recycling raw-memory allocator behind
// system-allocated array storage.
//
// Blocks are grouped into power-of-two size classes. Each class is backed by
// a sync.Pool, so a block handed back with Put can be returned by a later Get
// of the same class without touching the Go allocator. Blocks obtained with
// zero == false are NOT cleared and may contain data from a previous user.
package alloc

import (
	"context"
	"log/slog"
	"math/bits"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const (
	// minClassShift is the smallest pooled block (64 bytes).
	minClassShift = 6
	// maxClassShift is the largest pooled block (1 GiB). Larger requests
	// bypass the pools.
	maxClassShift = 30
)

// Alignment is the byte alignment of every block returned by Get.
// It equals the cache line size of the running architecture.
var Alignment = int(unsafe.Sizeof(cpu.CacheLinePad{}))

var (
	pools [maxClassShift + 1]sync.Pool

	hits     atomic.Uint64
	misses   atomic.Uint64
	recycled atomic.Uint64
	dropped  atomic.Uint64

	logger atomic.Pointer[slog.Logger]
)

// SetLogger replaces the logger used for allocator diagnostics.
// A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func currentLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Stats is a snapshot of allocator counters.
type Stats struct {
	Hits     uint64 // Get served from a pool
	Misses   uint64 // Get that had to allocate
	Recycled uint64 // blocks accepted by Put
	Dropped  uint64 // blocks rejected by Put (foreign or oversized)
}

// ReadStats returns the current allocator counters.
func ReadStats() Stats {
	return Stats{
		Hits:     hits.Load(),
		Misses:   misses.Load(),
		Recycled: recycled.Load(),
		Dropped:  dropped.Load(),
	}
}

// classOf returns the size class holding n bytes.
func classOf(n int) int {
	if n <= 1<<minClassShift {
		return minClassShift
	}
	return bits.Len(uint(n - 1))
}

// Get returns an aligned block of exactly nbytes bytes.
// If zero is false the contents are unspecified.
func Get(nbytes int, zero bool) []byte {
	if nbytes <= 0 {
		return nil
	}
	class := classOf(nbytes)
	if class > maxClassShift {
		misses.Add(1)
		return allocAligned(nbytes, nbytes)
	}
	if p, ok := pools[class].Get().(*[]byte); ok {
		hits.Add(1)
		b := (*p)[:nbytes]
		if zero {
			clear(b)
		}
		return b
	}
	misses.Add(1)
	if l := currentLogger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("alloc pool miss", "bytes", nbytes, "class", 1<<class)
	}
	// Fresh memory from make is already zeroed.
	return allocAligned(nbytes, 1<<class)
}

// Put hands a block obtained from Get back for reuse. The caller must not
// touch b afterwards.
func Put(b []byte) {
	c := cap(b)
	if c == 0 || c&(c-1) != 0 || c < 1<<minClassShift || c > 1<<maxClassShift {
		dropped.Add(1)
		return
	}
	b = b[:c]
	if !IsAligned(unsafe.Pointer(&b[0])) {
		dropped.Add(1)
		return
	}
	recycled.Add(1)
	pools[bits.Len(uint(c))-1].Put(&b)
}

// allocAligned allocates capacity bytes aligned to Alignment and returns the
// first n of them. This works by over-allocating and slicing at an aligned
// offset; the capacity is clipped so Put can recover the size class.
func allocAligned(n, capacity int) []byte {
	raw := make([]byte, capacity+Alignment-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (addr + uintptr(Alignment-1)) &^ uintptr(Alignment-1)
	off := int(aligned - addr)
	return raw[off : off+n : off+capacity]
}

// IsAligned reports whether p is aligned to Alignment.
func IsAligned(p unsafe.Pointer) bool {
	return uintptr(p)&uintptr(Alignment-1) == 0
}

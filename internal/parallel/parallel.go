// Package parallel provides the range partitioner used by the apply engine.
package parallel

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// EnvNumThreads overrides the default worker count when set to a positive integer.
const EnvNumThreads = "STRIDED_NUM_THREADS"

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count and the
// STRIDED_NUM_THREADS environment variable. It reads the environment on
// every call; Range uses a copy taken on its first call.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	if v, err := strconv.Atoi(os.Getenv(EnvNumThreads)); err == nil && v > 0 {
		n = v
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// defaultConfig is DefaultConfig evaluated once per process.
var defaultConfig = sync.OnceValue(DefaultConfig)

// Workers resolves a requested worker count. A positive request is used as
// is. Otherwise a disabled config yields 1 and an enabled one NumWorkers.
func (cfg Config) Workers(requested int) int {
	if requested > 0 {
		return requested
	}
	if !cfg.Enabled {
		return 1
	}
	return max(cfg.NumWorkers, 1)
}

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for dispatch diagnostics.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func currentLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// PanicError carries a panic raised on a worker goroutine back to the
// goroutine that called Range.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in parallel worker: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Chunks splits [0, n) into at most workers contiguous, near-equal ranges.
// The returned slice holds the boundaries: range i is [b[i], b[i+1]).
func Chunks(n, workers, minChunk int) []int {
	if n <= 0 {
		return []int{0, 0}
	}
	minChunk = max(minChunk, 1)
	k := min(max(workers, 1), (n+minChunk-1)/minChunk)
	bounds := make([]int, k+1)
	base, rem := n/k, n%k
	for i := 0; i < k; i++ {
		size := base
		if i < rem {
			size++
		}
		bounds[i+1] = bounds[i] + size
	}
	return bounds
}

// Range calls fn(lo, hi) over disjoint contiguous sub-ranges covering
// [0, n), using up to workers goroutines, and returns once all of them are
// done. With a single chunk fn runs on the calling goroutine.
//
// A panic inside fn is re-raised on the caller's goroutine as *PanicError
// after every other chunk has finished.
func Range(n, workers int, fn func(lo, hi int)) {
	RangeWithConfig(n, workers, fn, defaultConfig())
}

// RangeWithConfig is Range with an explicit configuration.
func RangeWithConfig(n, workers int, fn func(lo, hi int), cfg Config) {
	if n <= 0 {
		return
	}
	workers = cfg.Workers(workers)
	bounds := Chunks(n, workers, cfg.MinChunkSize)
	chunks := len(bounds) - 1
	if chunks == 1 {
		fn(0, n)
		return
	}

	if l := currentLogger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("parallel range", "extent", n, "workers", workers, "chunks", chunks)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < chunks; i++ {
		lo, hi := bounds[i], bounds[i+1]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &PanicError{Value: r, Stack: debug.Stack()}
				}
			}()
			fn(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		currentLogger().Error("parallel worker panicked", "error", err)
		panic(err)
	}
}

// File: internal/alloc/alloc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-backed data-block allocation for buffer byte storage.
//
// Blocks are zero-filled, 8-byte aligned, and their backing capacity is
// rounded up to a multiple of 8 so word-sized atomic access at the tail of
// a block never lands outside the mapping. Large blocks come from the OS
// page allocator (see alloc_linux.go / alloc_windows.go); small blocks and
// platform fallbacks come from the Go heap.

package alloc

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/typedbuf/api"
)

// DefaultCeiling bounds a single allocation. Mirrors the host-hook buffer
// ceiling of the embedding engine; adjustable via SetCeiling.
const DefaultCeiling = 1 << 40

// osThreshold is the block size from which allocation goes to the OS page
// allocator instead of the Go heap.
const osThreshold = 64 << 10

var ceiling atomic.Uint64

func init() {
	ceiling.Store(DefaultCeiling)
}

// Ceiling returns the current per-allocation byte ceiling.
func Ceiling() uint64 { return ceiling.Load() }

// SetCeiling adjusts the per-allocation byte ceiling.
func SetCeiling(n uint64) {
	if n == 0 {
		n = DefaultCeiling
	}
	ceiling.Store(n)
}

// roundUp8 rounds n up to the next multiple of 8.
func roundUp8(n int) int { return (n + 7) &^ 7 }

// System allocates blocks directly from the platform. It satisfies
// api.Allocator and is the default backing for buffers when pooling is
// disabled.
type System struct {
	// mapped tracks OS-mapped blocks by base address so Free can route
	// them back to the platform instead of the GC.
	mapped sync.Map // uintptr -> []byte (the full mapping)

	stats struct {
		alloc atomic.Int64
		free  atomic.Int64
	}
}

// Default is the process-wide system allocator.
var Default = &System{}

// Alloc returns a zero-filled block of exactly n bytes.
func (s *System) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, api.NewRangeError("invalid allocation size %d", n)
	}
	if uint64(n) > Ceiling() {
		return nil, api.NewRangeError("allocation of %d bytes exceeds the maximum buffer size", n).
			With("ceiling", Ceiling())
	}
	s.stats.alloc.Add(1)
	if n == 0 {
		return []byte{}, nil
	}
	return s.osAlloc(n)
}

// Free returns a block to the platform. Heap-backed blocks are left to the
// GC.
func (s *System) Free(b []byte) {
	s.stats.free.Add(1)
	if cap(b) == 0 {
		return
	}
	s.osFree(b)
}

// Stats reports allocation accounting.
func (s *System) Stats() api.AllocatorStats {
	alloc := s.stats.alloc.Load()
	free := s.stats.free.Load()
	return api.AllocatorStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		InUse:      alloc - free,
	}
}

// heapAlloc is the portable path and the fallback when the OS mapping
// fails.
func heapAlloc(n int) []byte {
	return make([]byte, n, roundUp8(n))
}

// File: api/alloc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Abstract allocation APIs backing buffer byte storage.

package api

// Allocator provides zero-filled byte blocks for buffer storage.
//
// Blocks handed out by Alloc must be zeroed, 8-byte aligned at index 0,
// and carry a capacity rounded up to a multiple of 8 so that word-sized
// atomic element access near the end of a block stays in bounds.
type Allocator interface {
	// Alloc returns a zero-filled block of exactly n bytes (the backing
	// capacity may be larger). Fails with a range-kind error when n
	// exceeds the configured allocation ceiling.
	Alloc(n int) ([]byte, error)

	// Free returns a block to the allocator. The block must not be used
	// afterwards.
	Free(b []byte)
}

// AllocatorStats aggregates allocation accounting for observability.
type AllocatorStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
	Recycled   int64
}

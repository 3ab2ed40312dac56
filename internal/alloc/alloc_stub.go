//go:build !linux && !windows
// +build !linux,!windows

// File: internal/alloc/alloc_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable fallback: all blocks come from the Go heap.

package alloc

func (s *System) osAlloc(n int) ([]byte, error) {
	return heapAlloc(n), nil
}

func (s *System) osFree(b []byte) {
	// GC reclaims heap blocks.
	_ = b
}

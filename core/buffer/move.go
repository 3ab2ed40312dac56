// File: core/buffer/move.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The raw byte-movement primitives every bulk operator funnels through.
// Both functions accept only pre-validated ranges: the caller must have
// proven to+count and from+count against a freshly observed length, and
// must pass that proven slice — never a cached one — after any user code
// has run.

package buffer

import "fmt"

// Move copies count bytes inside p from offset from to offset to,
// producing the same result as copying through a temporary buffer even
// when the ranges overlap.
func Move(p []byte, to, from, count uint64) {
	if count == 0 {
		return
	}
	assertRange(p, to, count)
	assertRange(p, from, count)
	// copy is overlap-safe in both directions.
	copy(p[to:to+count], p[from:from+count])
}

// MoveAscending copies count bytes inside p strictly left to right, so a
// forward-overlapping destination re-reads bytes the move already wrote.
// That smearing behavior is observable when a species constructor hands
// back a view over the source buffer, and must be preserved.
func MoveAscending(p []byte, to, from, count uint64) {
	if count == 0 {
		return
	}
	assertRange(p, to, count)
	assertRange(p, from, count)
	for i := uint64(0); i < count; i++ {
		p[to+i] = p[from+i]
	}
}

// CopyBytes moves count bytes between distinct buffers' byte ranges.
func CopyBytes(dst, src []byte, count uint64) {
	if count == 0 {
		return
	}
	if uint64(len(dst)) < count || uint64(len(src)) < count {
		panic(fmt.Sprintf("raw copy of %d bytes outside validated range (dst=%d src=%d)",
			count, len(dst), len(src)))
	}
	copy(dst[:count], src[:count])
}

func assertRange(p []byte, off, count uint64) {
	if off+count > uint64(len(p)) {
		panic(fmt.Sprintf("raw move range [%d,%d) outside validated length %d",
			off, off+count, len(p)))
	}
}

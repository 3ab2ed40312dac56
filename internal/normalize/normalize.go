// File: internal/normalize/normalize.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unified relative-index and range normalization for bulk operators.
// Every operator resolves its start/end/offset arguments through these
// routines against a freshly validated length, so clamping behavior stays
// identical across copyWithin, fill, slice, subarray and set.
//
// Resolution can invoke user code (a Valuer argument), which makes every
// call here a reentrancy point: callers must revalidate their view before
// touching raw bytes again.

package normalize

import (
	"math"

	"github.com/momentics/typedbuf/api"
)

// RelativeStart resolves a relative range start against length: negative
// values count from the end, the result is clamped to [0, length]. A nil
// argument resolves to 0.
func RelativeStart(v api.Value, length uint64) (uint64, error) {
	n, err := api.ToIntegerOrInfinity(v)
	if err != nil {
		return 0, err
	}
	return Relative(n, length), nil
}

// RelativeEnd resolves a relative range end against length. A nil argument
// resolves to length.
func RelativeEnd(v api.Value, length uint64) (uint64, error) {
	if v == nil {
		return length, nil
	}
	n, err := api.ToIntegerOrInfinity(v)
	if err != nil {
		return 0, err
	}
	return Relative(n, length), nil
}

// Relative clamps an integral (or infinite) offset n into [0, length],
// counting negatives from the end.
func Relative(n float64, length uint64) uint64 {
	if math.IsInf(n, -1) {
		return 0
	}
	if n < 0 {
		n += float64(length)
		if n < 0 {
			return 0
		}
		return uint64(n)
	}
	if n > float64(length) {
		return length
	}
	return uint64(n)
}

// CanonicalIndex reports whether index is a valid canonical element index:
// integral, non-negative, and not -0. It does not bounds-check.
func CanonicalIndex(index float64) (uint64, bool) {
	if math.IsNaN(index) || math.IsInf(index, 0) || math.Trunc(index) != index {
		return 0, false
	}
	if index == 0 && math.Signbit(index) {
		return 0, false
	}
	if index < 0 || index > api.MaxSafeInteger {
		return 0, false
	}
	return uint64(index), true
}

// SubClamped returns a-b, clamped at zero.
func SubClamped(a, b uint64) uint64 {
	if a <= b {
		return 0
	}
	return a - b
}

// Min returns the smaller of a and b.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// File: core/view/indexed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view

import (
	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/elem"
	"github.com/momentics/typedbuf/internal/normalize"
)

// IndexedGet reads the element at a canonical numeric index. It returns
// ok=false, never an error, for non-canonical indices and for detached or
// out-of-bounds views: absent indices read as missing, not as faults.
func (v *View) IndexedGet(index float64) (elem.Numeric, bool) {
	idx, ok := normalize.CanonicalIndex(index)
	if !ok {
		return elem.Numeric{}, false
	}
	bytes, bok := v.buf.Bytes(api.Relaxed)
	if !bok {
		return elem.Numeric{}, false
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) || idx >= v.arrayLength(bufLen) {
		return elem.Numeric{}, false
	}
	return elem.Load(v.elemAt(bytes, idx), v.kind, v.buf.IsShared(), api.SeqCst), true
}

// Get reads element i as a generic value.
func (v *View) Get(i uint64) (api.Value, bool) {
	n, ok := v.IndexedGet(float64(i))
	if !ok {
		return nil, false
	}
	return n.Value(), true
}

// IndexedSet converts value for the view's element kind and writes it at
// a canonical numeric index. Conversion runs first and may execute user
// code, so the index is re-proven against the buffer afterwards; a write
// that lands on a non-canonical index, a detached buffer, or outside the
// current bounds is a defined no-op. Conversion failures (content type
// mismatches) are real errors either way.
func (v *View) IndexedSet(index float64, value api.Value) error {
	n, err := elem.FromValue(v.kind, value)
	if err != nil {
		return err
	}
	idx, ok := normalize.CanonicalIndex(index)
	if !ok {
		return nil
	}
	bytes, bok := v.buf.Bytes(api.Relaxed)
	if !bok {
		return nil
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) || idx >= v.arrayLength(bufLen) {
		return nil
	}
	elem.Store(v.elemAt(bytes, idx), v.kind, n, v.buf.IsShared(), api.SeqCst)
	return nil
}

// At returns the element at a relative index, counting from the end when
// negative. Out-of-range indices yield a nil value without error; a
// detached or out-of-bounds view is a type-kind error.
func (v *View) At(index api.Value) (api.Value, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return nil, err
	}
	rel, err := api.ToIntegerOrInfinity(index)
	if err != nil {
		return nil, err
	}
	if rel < 0 {
		rel += float64(length)
	}
	if rel < 0 || rel >= float64(length) {
		return nil, nil
	}
	n, ok := v.IndexedGet(rel)
	if !ok {
		return nil, nil
	}
	return n.Value(), nil
}

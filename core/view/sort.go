// File: core/view/sort.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view

import (
	"math"
	"sort"

	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/elem"
	"github.com/momentics/typedbuf/internal/normalize"
)

// Comparator orders two element values. A NaN result, like a zero one,
// ranks the operands as equal. Comparators run user code.
type Comparator func(x, y api.Value) (api.Value, error)

// Sort orders the view in place. Without a comparator the default order
// applies: ascending, NaN sorted last, -0 before +0, BigInt by value.
// Elements are snapshotted before sorting, so a comparator that shrinks
// or detaches the buffer only drops the writes that no longer fit; it
// does not fault.
func (v *View) Sort(cmp Comparator) error {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return err
	}
	items, err := v.snapshotSorted(length, cmp)
	if err != nil {
		return err
	}
	for i, n := range items {
		v.storeTolerant(uint64(i), n)
	}
	return nil
}

// ToSorted returns a sorted copy of the view, leaving the source
// untouched. The result is an ordinary fixed-length view of the same
// kind over a fresh buffer.
func (v *View) ToSorted(cmp Comparator) (*View, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return nil, err
	}
	items, err := v.snapshotSorted(length, cmp)
	if err != nil {
		return nil, err
	}
	out, err := New(v.kind, length)
	if err != nil {
		return nil, err
	}
	bytes, _ := out.buf.Bytes(api.SeqCst)
	for i, n := range items {
		elem.Store(out.elemAt(bytes, uint64(i)), out.kind, n, false, api.Relaxed)
	}
	return out, nil
}

// snapshotSorted reads all elements under the current validation and
// returns them stably sorted. The stable sort preserves the order of
// elements the comparator cannot distinguish, which matters for bit
// patterns that compare as equal (NaN payloads, -0 under a custom
// comparator).
func (v *View) snapshotSorted(length uint64, cmp Comparator) ([]elem.Numeric, error) {
	bytes, ok := v.buf.Bytes(api.SeqCst)
	if !ok {
		return nil, api.NewTypeError("cannot sort a view over a detached buffer")
	}
	shared := v.buf.IsShared()
	items := make([]elem.Numeric, length)
	for i := uint64(0); i < length; i++ {
		items[i] = elem.Load(v.elemAt(bytes, i), v.kind, shared, api.Relaxed)
	}

	if cmp == nil {
		k := v.kind
		sort.SliceStable(items, func(i, j int) bool {
			return elem.Compare(k, items[i], items[j]) < 0
		})
		return items, nil
	}

	var cmpErr error
	sort.SliceStable(items, func(i, j int) bool {
		if cmpErr != nil {
			return false
		}
		r, err := cmp(items[i].Value(), items[j].Value())
		if err != nil {
			cmpErr = err
			return false
		}
		f, err := api.ToNumber(r)
		if err != nil {
			cmpErr = err
			return false
		}
		if math.IsNaN(f) {
			return false
		}
		return f < 0
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return items, nil
}

// storeTolerant writes element i if it still exists, and silently drops
// the write otherwise. Used for write-back after steps that may have
// resized the buffer.
func (v *View) storeTolerant(i uint64, n elem.Numeric) {
	bytes, ok := v.buf.Bytes(api.Relaxed)
	if !ok {
		return
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) || i >= v.arrayLength(bufLen) {
		return
	}
	elem.Store(v.elemAt(bytes, i), v.kind, n, v.buf.IsShared(), api.SeqCst)
}

// Reverse reverses the view in place, swapping raw element bytes so bit
// patterns survive untouched.
func (v *View) Reverse() error {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return err
	}
	bytes, _ := v.buf.Bytes(api.SeqCst)
	size := uint64(v.kind.Size())
	var tmp [8]byte
	for i, j := uint64(0), length-1; length > 0 && i < j; i, j = i+1, j-1 {
		a := v.elemAt(bytes, i)[:size]
		b := v.elemAt(bytes, j)[:size]
		copy(tmp[:size], a)
		copy(a, b)
		copy(b, tmp[:size])
	}
	return nil
}

// ToReversed returns a reversed copy over a fresh buffer.
func (v *View) ToReversed() (*View, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return nil, err
	}
	out, err := New(v.kind, length)
	if err != nil {
		return nil, err
	}
	srcBytes, _ := v.buf.Bytes(api.SeqCst)
	dstBytes, _ := out.buf.Bytes(api.SeqCst)
	size := uint64(v.kind.Size())
	for i := uint64(0); i < length; i++ {
		copy(out.elemAt(dstBytes, length-1-i)[:size], v.elemAt(srcBytes, i)[:size])
	}
	return out, nil
}

// With returns a copy of the view with the element at a relative index
// replaced by value. Unlike the indexed set protocol an out-of-range
// index is a range-kind error here.
func (v *View) With(index, value api.Value) (*View, error) {
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
		return nil, api.NewRangeError("index %v out of range for a view of %d elements", rel, length)
	}
	k := uint64(rel)

	n, err := elem.FromValue(v.kind, value)
	if err != nil {
		return nil, err
	}

	out, err := New(v.kind, length)
	if err != nil {
		return nil, err
	}
	srcBytes, ok := v.buf.Bytes(api.SeqCst)
	if !ok {
		return nil, api.NewTypeError("buffer was detached during element replacement")
	}
	dstBytes, _ := out.buf.Bytes(api.SeqCst)
	size := uint64(v.kind.Size())
	if bufLen := uint64(len(srcBytes)); !v.outOfBounds(bufLen) {
		avail := normalize.Min(length, v.arrayLength(bufLen))
		copy(dstBytes[out.byteOffset:out.byteOffset+avail*size], srcBytes[v.byteOffset:])
	}
	elem.Store(out.elemAt(dstBytes, k), out.kind, n, false, api.Relaxed)
	return out, nil
}

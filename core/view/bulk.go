// File: core/view/bulk.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view

import (
	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/buffer"
	"github.com/momentics/typedbuf/core/elem"
	"github.com/momentics/typedbuf/internal/normalize"
)

// CopyWithin moves the element range [start,end) to target within the
// same view, overlap-safe. Argument resolution may run user code, so the
// byte count is re-clamped against the view's byte limit observed after
// resolution before any bytes move.
func (v *View) CopyWithin(target, start, end api.Value) error {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return err
	}
	to, err := normalize.RelativeStart(target, length)
	if err != nil {
		return err
	}
	from, err := normalize.RelativeStart(start, length)
	if err != nil {
		return err
	}
	final, err := normalize.RelativeEnd(end, length)
	if err != nil {
		return err
	}
	count := normalize.Min(normalize.SubClamped(final, from), normalize.SubClamped(length, to))
	if count == 0 {
		return nil
	}

	bytes, ok := v.buf.Bytes(api.SeqCst)
	if !ok {
		return api.NewTypeError("cannot copy within a view over a detached buffer")
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) {
		return api.NewTypeError("view is outside the bounds of its buffer")
	}

	size := uint64(v.kind.Size())
	limit := v.byteOffset + v.arrayLength(bufLen)*size
	toByte := v.byteOffset + to*size
	fromByte := v.byteOffset + from*size
	if toByte >= limit || fromByte >= limit {
		return nil
	}
	countByte := normalize.Min(count*size, normalize.Min(limit-toByte, limit-fromByte))
	buffer.Move(bytes, toByte, fromByte, countByte)
	return nil
}

// Fill writes value into the element range [start,end). The value
// converts once, before range resolution; both steps may run user code,
// so the end bound is re-clamped to the length observed afterwards.
func (v *View) Fill(value, start, end api.Value) error {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return err
	}
	n, err := elem.FromValue(v.kind, value)
	if err != nil {
		return err
	}
	from, err := normalize.RelativeStart(start, length)
	if err != nil {
		return err
	}
	until, err := normalize.RelativeEnd(end, length)
	if err != nil {
		return err
	}

	bytes, ok := v.buf.Bytes(api.SeqCst)
	if !ok {
		return api.NewTypeError("cannot fill a view over a detached buffer")
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) {
		return api.NewTypeError("view is outside the bounds of its buffer")
	}
	until = normalize.Min(until, v.arrayLength(bufLen))

	shared := v.buf.IsShared()
	for i := from; i < until; i++ {
		elem.Store(v.elemAt(bytes, i), v.kind, n, shared, api.SeqCst)
	}
	return nil
}

// Set copies all of src into this view starting at element offset.
// Content types must match; the source must fit entirely, else a
// range-kind error. When both views share one buffer the source range is
// cloned aside first so overlapping copies read pre-write data.
func (v *View) Set(src *View, offset api.Value) error {
	off, err := api.ToIntegerOrInfinity(offset)
	if err != nil {
		return err
	}
	if off < 0 {
		return api.NewRangeError("set offset must not be negative, got %v", off)
	}
	targetLen, err := v.Validate(api.SeqCst)
	if err != nil {
		return err
	}
	srcLen, err := src.Validate(api.SeqCst)
	if err != nil {
		return err
	}
	if off > float64(targetLen) || srcLen > targetLen-uint64(off) {
		return api.NewRangeError(
			"source of %d elements at offset %v does not fit a target of %d elements",
			srcLen, off, targetLen)
	}
	if v.kind.ContentType() != src.kind.ContentType() {
		return api.NewTypeError(
			"cannot set a %s view from a %s view: content types differ", v.kind, src.kind)
	}
	targetOff := uint64(off)

	dstBytes, _ := v.buf.Bytes(api.SeqCst)
	srcBytes, _ := src.buf.Bytes(api.SeqCst)
	srcSize := uint64(src.kind.Size())
	srcRange := srcBytes[src.byteOffset : src.byteOffset+srcLen*srcSize]
	if v.buf == src.buf {
		aside := make([]byte, len(srcRange))
		copy(aside, srcRange)
		srcRange = aside
	}

	if v.kind == src.kind {
		buffer.CopyBytes(dstBytes[v.byteOffset+targetOff*srcSize:], srcRange, srcLen*srcSize)
		return nil
	}

	shared := src.buf.IsShared() && v.buf != src.buf
	dstShared := v.buf.IsShared()
	for i := uint64(0); i < srcLen; i++ {
		n := elem.Load(srcRange[i*srcSize:], src.kind, shared, api.Relaxed)
		elem.Store(v.elemAt(dstBytes, targetOff+i), v.kind, n, dstShared, api.SeqCst)
	}
	return nil
}

// SetFrom copies an array-like into this view starting at element
// offset. Source getters run user code, so every element goes through
// the indexed set protocol with its per-write revalidation.
func (v *View) SetFrom(src ArrayLike, offset api.Value) error {
	off, err := api.ToIntegerOrInfinity(offset)
	if err != nil {
		return err
	}
	if off < 0 {
		return api.NewRangeError("set offset must not be negative, got %v", off)
	}
	targetLen, err := v.Validate(api.SeqCst)
	if err != nil {
		return err
	}
	srcLen, err := src.Len()
	if err != nil {
		return err
	}
	if off > float64(targetLen) || srcLen > targetLen-uint64(off) {
		return api.NewRangeError(
			"source of %d elements at offset %v does not fit a target of %d elements",
			srcLen, off, targetLen)
	}
	targetOff := uint64(off)

	for i := uint64(0); i < srcLen; i++ {
		val, err := src.Get(i)
		if err != nil {
			return err
		}
		if err := v.IndexedSet(float64(targetOff+i), val); err != nil {
			return err
		}
	}
	return nil
}

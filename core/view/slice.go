// File: core/view/slice.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view

import (
	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/buffer"
	"github.com/momentics/typedbuf/internal/normalize"
)

// Slice copies the element range [start,end) into a fresh view produced
// by the species factory. The source is revalidated after the factory
// runs and the range re-clamped to the length seen then; a source that
// shrank copies fewer elements, one that detached is a type-kind error.
// Same-kind copies move raw bytes and preserve bit patterns; when source
// and result share a buffer the copy runs bytewise ascending, so
// overlapping ranges read bytes already written by the same call.
func (v *View) Slice(start, end api.Value, factory SpeciesFactory) (*View, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return nil, err
	}
	from, err := normalize.RelativeStart(start, length)
	if err != nil {
		return nil, err
	}
	until, err := normalize.RelativeEnd(end, length)
	if err != nil {
		return nil, err
	}
	count := normalize.SubClamped(until, from)

	out, err := speciesCreate(v, factory, []api.Value{count})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return out, nil
	}

	srcBytes, ok := v.buf.Bytes(api.SeqCst)
	if !ok {
		return nil, api.NewTypeError("cannot slice a view over a detached buffer")
	}
	bufLen := uint64(len(srcBytes))
	if v.outOfBounds(bufLen) {
		return nil, api.NewTypeError("view is outside the bounds of its buffer")
	}
	until = normalize.Min(until, v.arrayLength(bufLen))
	count = normalize.SubClamped(until, from)

	if v.kind == out.kind {
		size := uint64(v.kind.Size())
		srcByte := v.byteOffset + from*size
		dstBytes, dok := out.buf.Bytes(api.SeqCst)
		if !dok {
			return nil, api.NewTypeError("derived view's buffer was detached during slice")
		}
		if v.buf == out.buf {
			buffer.MoveAscending(srcBytes, out.byteOffset, srcByte, count*size)
		} else {
			buffer.CopyBytes(dstBytes[out.byteOffset:], srcBytes[srcByte:], count*size)
		}
		return out, nil
	}

	for i := uint64(0); i < count; i++ {
		n, ok := v.IndexedGet(float64(from + i))
		if !ok {
			break
		}
		if err := out.IndexedSet(float64(i), n.Value()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Subarray returns a view over the same buffer for the element range
// [start,end), copying nothing. It works on detached and out-of-bounds
// sources, which resolve their ranges against length 0. A
// length-tracking source with no end bound yields a length-tracking
// result.
func (v *View) Subarray(start, end api.Value, factory SpeciesFactory) (*View, error) {
	srcLen := uint64(0)
	if bytes, ok := v.buf.Bytes(api.SeqCst); ok {
		if bufLen := uint64(len(bytes)); !v.outOfBounds(bufLen) {
			srcLen = v.arrayLength(bufLen)
		}
	}
	from, err := normalize.RelativeStart(start, srcLen)
	if err != nil {
		return nil, err
	}
	beginByte := v.byteOffset + from*uint64(v.kind.Size())

	if v.IsLengthTracking() && end == nil {
		return speciesCreate(v, factory, []api.Value{v.buf, beginByte})
	}
	until, err := normalize.RelativeEnd(end, srcLen)
	if err != nil {
		return nil, err
	}
	newLen := normalize.SubClamped(until, from)
	return speciesCreate(v, factory, []api.Value{v.buf, beginByte, newLen})
}

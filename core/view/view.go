// File: core/view/view.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package view implements typed views over buffers: construction, bounds
// validation, the integer-indexed element protocol, and the bulk
// operators (copy-within, set, fill, slice, subarray, sort).
//
// A view is immutable after construction; only the referenced buffer's
// size changes underneath it. Every operation therefore starts from a
// fresh validation snapshot, and revalidates after any step that can run
// user code (argument conversion, comparators, species constructors)
// before touching raw bytes again. Raw movement itself goes through the
// buffer package's move primitives, which accept only freshly proven
// ranges.
package view

import (
	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/buffer"
	"github.com/momentics/typedbuf/core/elem"
)

// View is a typed window onto a buffer: a shared buffer reference, a byte
// offset, and either a fixed element length or length-tracking mode where
// the effective length follows the buffer's current size.
type View struct {
	buf        *buffer.Buffer
	kind       elem.Kind
	byteOffset uint64
	byteLength *uint64 // nil while length-tracking
	length     *uint64 // declared element count, fixed views only
}

// Kind returns the element kind.
func (v *View) Kind() elem.Kind { return v.kind }

// Buffer returns the viewed buffer.
func (v *View) Buffer() *buffer.Buffer { return v.buf }

// ByteOffset returns the view's fixed byte offset into the buffer.
func (v *View) ByteOffset() uint64 { return v.byteOffset }

// IsLengthTracking reports whether the view follows the buffer's current
// size instead of a fixed length.
func (v *View) IsLengthTracking() bool { return v.byteLength == nil }

// outOfBounds reports whether the view's range no longer fits a buffer of
// bufLen bytes. Zero-length views are never out of bounds.
func (v *View) outOfBounds(bufLen uint64) bool {
	end := bufLen
	if v.length != nil {
		end = v.byteOffset + *v.length*uint64(v.kind.Size())
	}
	return v.byteOffset > bufLen || end > bufLen
}

// arrayLength derives the effective element count against bufLen. Callers
// must have ruled out the out-of-bounds state first.
func (v *View) arrayLength(bufLen uint64) uint64 {
	if v.length != nil {
		return *v.length
	}
	return (bufLen - v.byteOffset) / uint64(v.kind.Size())
}

// Validate computes the view's effective element length under ord,
// failing with a type-kind error when the buffer is detached or the
// view's fixed range exceeds the shrunk buffer. Every operation begins
// here, and returns here after any reentrant user call.
func (v *View) Validate(ord api.Ordering) (uint64, error) {
	bytes, ok := v.buf.Bytes(ord)
	if !ok {
		return 0, api.NewTypeError("cannot operate on a view over a detached buffer")
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) {
		return 0, api.NewTypeError("view is outside the bounds of its buffer")
	}
	return v.arrayLength(bufLen), nil
}

// Len returns the effective element count, or 0 for detached or
// out-of-bounds views. A cheap probe; uses a relaxed length read.
func (v *View) Len() uint64 {
	bytes, ok := v.buf.Bytes(api.Relaxed)
	if !ok {
		return 0
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) {
		return 0
	}
	return v.arrayLength(bufLen)
}

// ByteLength returns the effective byte length, 0 for detached or
// out-of-bounds views.
func (v *View) ByteLength() uint64 {
	bytes, ok := v.buf.Bytes(api.Relaxed)
	if !ok {
		return 0
	}
	bufLen := uint64(len(bytes))
	if v.outOfBounds(bufLen) {
		return 0
	}
	if v.byteLength != nil {
		return *v.byteLength
	}
	return v.arrayLength(bufLen) * uint64(v.kind.Size())
}

// elemAt returns the byte range of element i within freshly fetched
// buffer bytes. i must have been proven against the same snapshot.
func (v *View) elemAt(bytes []byte, i uint64) []byte {
	return bytes[v.byteOffset+i*uint64(v.kind.Size()):]
}

// ArrayLike is an indexed source of generic values. Get may run arbitrary
// user code (getters), so consumers revalidate after each call.
type ArrayLike interface {
	Len() (uint64, error)
	Get(i uint64) (api.Value, error)
}

// Values adapts a plain value slice to ArrayLike.
type Values []api.Value

func (s Values) Len() (uint64, error) { return uint64(len(s)), nil }

func (s Values) Get(i uint64) (api.Value, error) {
	if i >= uint64(len(s)) {
		return nil, nil
	}
	return s[i], nil
}

func fixed(n uint64) *uint64 { return &n }

// New allocates a fresh zero-filled buffer and a fixed view of length
// elements over it.
func New(kind elem.Kind, length uint64, opts ...buffer.Option) (*View, error) {
	size := uint64(kind.Size())
	if length > api.MaxSafeInteger/size {
		return nil, api.NewRangeError("view length %d overflows the maximum array length", length)
	}
	byteLen := length * size
	buf, err := buffer.Allocate(byteLen, nil, opts...)
	if err != nil {
		return nil, err
	}
	return &View{
		buf:        buf,
		kind:       kind,
		byteLength: fixed(byteLen),
		length:     fixed(length),
	}, nil
}

// NewFromBuffer creates a view over an existing buffer at byteOffset. A
// nil length makes the view length-tracking when the buffer is resizable,
// or spans the rest of a fixed buffer otherwise.
func NewFromBuffer(kind elem.Kind, buf *buffer.Buffer, byteOffset uint64, length *uint64) (*View, error) {
	size := uint64(kind.Size())
	if byteOffset%size != 0 {
		return nil, api.NewRangeError(
			"byte offset %d is not aligned to the %s element size %d", byteOffset, kind, size)
	}

	bytes, ok := buf.Bytes(api.SeqCst)
	if !ok {
		return nil, api.NewTypeError("cannot construct a view over a detached buffer")
	}
	bufLen := uint64(len(bytes))

	v := &View{buf: buf, kind: kind, byteOffset: byteOffset}
	switch {
	case length != nil:
		byteLen := *length * size
		if byteOffset+byteLen > bufLen {
			return nil, api.NewRangeError(
				"view range [%d,%d) exceeds the buffer length %d", byteOffset, byteOffset+byteLen, bufLen)
		}
		v.byteLength = fixed(byteLen)
		v.length = fixed(*length)
	case buf.IsResizable():
		if byteOffset > bufLen {
			return nil, api.NewRangeError(
				"view offset %d exceeds the buffer length %d", byteOffset, bufLen)
		}
		// length-tracking
	default:
		if bufLen%size != 0 {
			return nil, api.NewRangeError(
				"buffer length %d is not a multiple of the %s element size", bufLen, kind)
		}
		if byteOffset > bufLen {
			return nil, api.NewRangeError(
				"view offset %d exceeds the buffer length %d", byteOffset, bufLen)
		}
		byteLen := bufLen - byteOffset
		v.byteLength = fixed(byteLen)
		v.length = fixed(byteLen / size)
	}
	return v, nil
}

// NewFromView copies another view into a freshly allocated buffer. Equal
// kinds copy raw bytes, preserving bit patterns; different kinds of the
// same content type convert element by element; mixed content types fail
// with a type-kind error.
func NewFromView(kind elem.Kind, src *View, opts ...buffer.Option) (*View, error) {
	srcLen, err := src.Validate(api.SeqCst)
	if err != nil {
		return nil, err
	}

	if kind == src.kind {
		byteLen := srcLen * uint64(kind.Size())
		buf, err := buffer.Allocate(byteLen, nil, opts...)
		if err != nil {
			return nil, err
		}
		srcBytes, _ := src.buf.Bytes(api.SeqCst)
		dstBytes, _ := buf.Bytes(api.SeqCst)
		buffer.CopyBytes(dstBytes, srcBytes[src.byteOffset:], byteLen)
		return &View{
			buf:        buf,
			kind:       kind,
			byteLength: fixed(byteLen),
			length:     fixed(srcLen),
		}, nil
	}

	if kind.ContentType() != src.kind.ContentType() {
		return nil, api.NewTypeError(
			"cannot construct a %s view from a %s view: content types differ", kind, src.kind)
	}

	out, err := New(kind, srcLen, opts...)
	if err != nil {
		return nil, err
	}
	srcBytes, _ := src.buf.Bytes(api.SeqCst)
	dstBytes, _ := out.buf.Bytes(api.SeqCst)
	shared := src.buf.IsShared()
	for i := uint64(0); i < srcLen; i++ {
		n := elem.Load(src.elemAt(srcBytes, i), src.kind, shared, api.Relaxed)
		elem.Store(out.elemAt(dstBytes, i), kind, n, false, api.Relaxed)
	}
	return out, nil
}

// NewFromValues allocates a view for the source's observed length and
// assigns element by element through the indexed set protocol, so source
// getters may run user code (including code that detaches the fresh
// buffer) mid-construction.
func NewFromValues(kind elem.Kind, src ArrayLike, opts ...buffer.Option) (*View, error) {
	n, err := src.Len()
	if err != nil {
		return nil, err
	}
	out, err := New(kind, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < n; i++ {
		val, err := src.Get(i)
		if err != nil {
			return nil, err
		}
		if err := out.IndexedSet(float64(i), val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Of builds a view holding exactly the given values.
func Of(kind elem.Kind, values ...api.Value) (*View, error) {
	return NewFromValues(kind, Values(values))
}

// From builds a view from an array-like, mapping every element through
// mapFn when it is non-nil.
func From(kind elem.Kind, src ArrayLike, mapFn func(api.Value, uint64) (api.Value, error)) (*View, error) {
	n, err := src.Len()
	if err != nil {
		return nil, err
	}
	out, err := New(kind, n)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < n; i++ {
		val, err := src.Get(i)
		if err != nil {
			return nil, err
		}
		if mapFn != nil {
			if val, err = mapFn(val, i); err != nil {
				return nil, err
			}
		}
		if err := out.IndexedSet(float64(i), val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

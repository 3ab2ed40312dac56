// File: core/buffer/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package buffer owns contiguous byte allocations and their lifecycle:
// fixed, resizable and shared-growable storage, one-way detach via
// transfer, and ordered length observation for concurrently growing
// shared buffers. Views alias a Buffer through shared references and
// re-derive its current length on every use; nothing here caches a length
// on behalf of a caller.
package buffer

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/control"
	"github.com/momentics/typedbuf/internal/normalize"
	"github.com/momentics/typedbuf/pool"
)

// Buffer is a contiguous byte allocation. Many views may alias one Buffer;
// the Buffer holds no back-references to them.
type Buffer struct {
	// mu serializes resize, transfer and release. Element access does not
	// take it; script execution is single-threaded per agent and shared
	// buffers never reallocate.
	mu sync.Mutex

	// data is the backing block. Resizable buffers preallocate maxLen so
	// shared growth never moves memory.
	data []byte

	// length is the committed byte length. Shared growers ratchet it with
	// a CAS; everyone reads it atomically.
	length atomic.Uint64

	maxLen    uint64
	resizable bool
	shared    bool
	detached  atomic.Bool

	id       uuid.UUID
	alloc    api.Allocator
	registry *control.Registry
}

type options struct {
	alloc    api.Allocator
	registry *control.Registry
}

// Option customizes buffer allocation.
type Option func(*options)

// WithAllocator overrides the backing allocator.
func WithAllocator(a api.Allocator) Option {
	return func(o *options) { o.alloc = a }
}

// WithRegistry overrides the control registry buffers report to.
func WithRegistry(r *control.Registry) Option {
	return func(o *options) { o.registry = r }
}

func buildOptions(opts []Option) options {
	o := options{
		alloc:    pool.Default(),
		registry: control.DefaultRegistry(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Allocate creates a zero-filled buffer of byteLen bytes. A non-nil maxLen
// makes the buffer resizable up to that many bytes; storage for maxLen is
// reserved up front so later growth cannot fail.
func Allocate(byteLen uint64, maxLen *uint64, opts ...Option) (*Buffer, error) {
	return allocate(byteLen, maxLen, false, opts)
}

// AllocateShared creates a shared buffer. With a non-nil maxLen the buffer
// is growable (never shrinkable); shared buffers cannot detach.
func AllocateShared(byteLen uint64, maxLen *uint64, opts ...Option) (*Buffer, error) {
	return allocate(byteLen, maxLen, true, opts)
}

func allocate(byteLen uint64, maxLen *uint64, shared bool, opts []Option) (*Buffer, error) {
	o := buildOptions(opts)

	reserve := byteLen
	if maxLen != nil {
		if byteLen > *maxLen {
			return nil, api.NewRangeError(
				"buffer length %d exceeds its maximum byte length %d", byteLen, *maxLen)
		}
		reserve = *maxLen
	}
	if limit := control.Current().MaxBufferBytes; limit > 0 && reserve > limit {
		return nil, api.NewRangeError(
			"cannot allocate a buffer that exceeds the maximum buffer size").
			With("requested", reserve).With("limit", limit)
	}
	if reserve > uint64(int(^uint(0)>>1)) {
		return nil, api.NewRangeError("buffer length %d is not addressable", reserve)
	}

	block, err := o.alloc.Alloc(int(reserve))
	if err != nil {
		return nil, err
	}

	b := &Buffer{
		data:      block[:reserve],
		resizable: maxLen != nil,
		shared:    shared,
		alloc:     o.alloc,
		registry:  o.registry,
	}
	if maxLen != nil {
		b.maxLen = *maxLen
	} else {
		b.maxLen = byteLen
	}
	b.length.Store(byteLen)
	if o.registry != nil {
		b.id = o.registry.TrackAllocate(byteLen, b.maxLen, shared, b.resizable)
	} else {
		b.id = uuid.New()
	}
	return b, nil
}

// ID returns the buffer's registry identity.
func (b *Buffer) ID() uuid.UUID { return b.id }

// IsShared reports shared (multi-agent) ownership.
func (b *Buffer) IsShared() bool { return b.shared }

// IsDetached reports whether the buffer's bytes are permanently gone.
func (b *Buffer) IsDetached() bool { return b.detached.Load() }

// IsResizable reports whether the length can change after creation.
func (b *Buffer) IsResizable() bool { return b.resizable }

// MaxByteLength returns the resize/grow ceiling (the fixed length for
// non-resizable buffers).
func (b *Buffer) MaxByteLength() uint64 { return b.maxLen }

// ByteLength observes the committed length under ord. Detached buffers
// report 0.
func (b *Buffer) ByteLength(ord api.Ordering) uint64 {
	if b.detached.Load() {
		return 0
	}
	// Go's atomics are sequentially consistent; a Relaxed request keeps
	// the cheaper semantic contract (a stale answer would be legal) even
	// though the implementation cannot weaken the load.
	_ = ord
	return b.length.Load()
}

// Bytes returns the currently committed bytes, or (nil, false) when the
// buffer is detached. The slice stays valid until the next resize or
// transfer; callers that run user code in between must re-fetch it.
func (b *Buffer) Bytes(ord api.Ordering) ([]byte, bool) {
	if b.detached.Load() {
		return nil, false
	}
	_ = ord
	return b.data[:b.length.Load()], true
}

// Resize changes a resizable, non-shared buffer's length. The vacated tail
// is zeroed on shrink so a later grow re-exposes zero bytes.
func (b *Buffer) Resize(newLen uint64) error {
	if b.shared {
		return api.NewTypeError("cannot resize a shared buffer; use Grow")
	}
	if !b.resizable {
		return api.NewTypeError("cannot resize a fixed-length buffer")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detached.Load() {
		return api.NewTypeError("cannot resize a detached buffer")
	}
	if newLen > b.maxLen {
		return api.NewRangeError(
			"new byte length %d exceeds the buffer's maximum byte length %d", newLen, b.maxLen)
	}
	old := b.length.Load()
	if newLen < old {
		clear(b.data[newLen:old])
	}
	b.length.Store(newLen)
	if b.registry != nil {
		b.registry.TrackResize(b.id, newLen)
	}
	return nil
}

// Grow ratchets a shared growable buffer's length upward. Concurrent
// growers race through a CAS loop; the committed length never shrinks.
func (b *Buffer) Grow(newLen uint64) error {
	if !b.shared {
		return api.NewTypeError("cannot grow a non-shared buffer; use Resize")
	}
	if !b.resizable {
		return api.NewTypeError("cannot grow a fixed-length shared buffer")
	}
	if newLen > b.maxLen {
		return api.NewRangeError(
			"new byte length %d exceeds the buffer's maximum byte length %d", newLen, b.maxLen)
	}
	for {
		cur := b.length.Load()
		if newLen < cur {
			return api.NewRangeError(
				"shared buffers only grow: %d is below the current length %d", newLen, cur)
		}
		if b.length.CompareAndSwap(cur, newLen) {
			if b.registry != nil {
				b.registry.TrackResize(b.id, newLen)
			}
			return nil
		}
	}
}

// Transfer moves the bytes into a new buffer and detaches this one,
// invalidating every aliasing view. Resizability carries over.
func (b *Buffer) Transfer() (*Buffer, error) {
	return b.transfer(true)
}

// TransferToFixed is Transfer with the resizability dropped from the
// result.
func (b *Buffer) TransferToFixed() (*Buffer, error) {
	return b.transfer(false)
}

func (b *Buffer) transfer(keepResizable bool) (*Buffer, error) {
	if b.shared {
		return nil, api.NewTypeError("cannot transfer a shared buffer")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detached.Load() {
		return nil, api.NewTypeError("cannot transfer a detached buffer")
	}

	n := b.length.Load()
	next := &Buffer{
		data:      b.data,
		resizable: keepResizable && b.resizable,
		alloc:     b.alloc,
		registry:  b.registry,
	}
	if next.resizable {
		next.maxLen = b.maxLen
	} else {
		next.maxLen = n
		next.data = b.data[:n]
	}
	next.length.Store(n)

	b.data = nil
	b.detached.Store(true)
	if b.registry != nil {
		b.registry.TrackDetach(b.id)
		next.id = b.registry.TrackAllocate(n, next.maxLen, false, next.resizable)
	} else {
		next.id = uuid.New()
	}
	return next, nil
}

// Slice copies the resolved [start, end) byte range into a freshly
// allocated fixed buffer. Argument resolution may run user code, so the
// detached state is re-checked before the copy.
func (b *Buffer) Slice(start, end api.Value, opts ...Option) (*Buffer, error) {
	if b.shared {
		return nil, api.NewTypeError("cannot slice a shared buffer")
	}
	if b.detached.Load() {
		return nil, api.NewTypeError("cannot slice a detached buffer")
	}
	length := b.length.Load()

	first, err := normalize.RelativeStart(start, length)
	if err != nil {
		return nil, err
	}
	last, err := normalize.RelativeEnd(end, length)
	if err != nil {
		return nil, err
	}
	newLen := normalize.SubClamped(last, first)

	src, ok := b.Bytes(api.SeqCst)
	if !ok {
		return nil, api.NewTypeError("buffer was detached while resolving slice bounds")
	}
	// The buffer may also have shrunk mid-resolution.
	first = normalize.Min(first, uint64(len(src)))
	newLen = normalize.Min(newLen, uint64(len(src))-first)

	out, err := Allocate(newLen, nil, opts...)
	if err != nil {
		return nil, err
	}
	copy(out.data, src[first:first+newLen])
	return out, nil
}

// Release detaches the buffer and returns its block to the allocator.
// Intended for embedders that track buffer lifetimes explicitly; shared
// buffers cannot be released.
func (b *Buffer) Release() error {
	if b.shared {
		return api.NewTypeError("cannot release a shared buffer")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detached.Load() {
		return api.NewTypeError("buffer already detached")
	}
	block := b.data[:cap(b.data)]
	b.data = nil
	b.detached.Store(true)
	if b.registry != nil {
		b.registry.TrackDetach(b.id)
	}
	b.alloc.Free(block)
	return nil
}

// File: core/elem/codec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-element load/store between raw buffer bytes and Numeric values.
//
// Callers pass a slice that starts at the element's byte offset and has
// already been bounds-proven to hold at least Kind.Size() bytes; the codec
// itself never re-derives bounds. For shared buffers the access goes
// through word-sized atomics (CAS read-modify-write for sub-word kinds),
// which requires the backing block to be 8-byte aligned with capacity
// rounded to a multiple of 8 — the allocator contract. This file is the
// only place in the element layer that touches unsafe.

package elem

import (
	"encoding/binary"
	"math"
	"math/big"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/typedbuf/api"
)

// Load reads one element of kind k from the start of b.
func Load(b []byte, k Kind, shared bool, ord api.Ordering) Numeric {
	size := k.Size()
	var raw uint64
	if shared {
		raw = atomicLoad(b, size)
	} else {
		switch size {
		case 1:
			raw = uint64(b[0])
		case 2:
			raw = uint64(binary.LittleEndian.Uint16(b))
		case 4:
			raw = uint64(binary.LittleEndian.Uint32(b))
		default:
			raw = binary.LittleEndian.Uint64(b)
		}
	}
	_ = ord // Go exposes only sequentially consistent atomics.
	return fromRaw(k, raw)
}

// Store writes one element of kind k at the start of b, narrowing v into
// the kind's bit width.
func Store(b []byte, k Kind, v Numeric, shared bool, ord api.Ordering) {
	raw := toRaw(k, v)
	size := k.Size()
	if shared {
		atomicStore(b, size, raw)
		_ = ord
		return
	}
	switch size {
	case 1:
		b[0] = byte(raw)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(raw))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(raw))
	default:
		binary.LittleEndian.PutUint64(b, raw)
	}
}

// fromRaw widens a raw little-endian bit pattern into a Numeric.
func fromRaw(k Kind, raw uint64) Numeric {
	switch k {
	case Int8:
		return Number(float64(int8(raw)))
	case Uint8, Uint8Clamped:
		return Number(float64(uint8(raw)))
	case Int16:
		return Number(float64(int16(raw)))
	case Uint16:
		return Number(float64(uint16(raw)))
	case Int32:
		return Number(float64(int32(raw)))
	case Uint32:
		return Number(float64(uint32(raw)))
	case Float32:
		return Number(float64(math.Float32frombits(uint32(raw))))
	case Float64:
		return Number(math.Float64frombits(raw))
	case BigInt64:
		return BigInt(big.NewInt(int64(raw)))
	default: // BigUint64
		return BigInt(new(big.Int).SetUint64(raw))
	}
}

// toRaw narrows a Numeric into the kind's raw bit pattern: two's-complement
// truncation for integers, clamping for Uint8Clamped, IEEE narrowing for
// Float32, modulo 2^64 for the BigInt kinds.
func toRaw(k Kind, v Numeric) uint64 {
	switch k {
	case Int8, Uint8:
		return wrapUint(v.num, 8)
	case Uint8Clamped:
		return clampUint8(v.num)
	case Int16, Uint16:
		return wrapUint(v.num, 16)
	case Int32, Uint32:
		return wrapUint(v.num, 32)
	case Float32:
		return uint64(math.Float32bits(float32(v.num)))
	case Float64:
		return math.Float64bits(v.num)
	default: // BigInt64, BigUint64
		return wrapBig64(v.big)
	}
}

// word32 locates the aligned 32-bit word containing b[0] and the bit shift
// of b[0] inside it. Little-endian layout is assumed, matching the plain
// codec path.
func word32(b []byte) (*uint32, uint) {
	w := (*uint32)(unsafe.Pointer(uintptr(unsafe.Pointer(&b[0])) &^ 3))
	return w, uint(uintptr(unsafe.Pointer(&b[0]))&3) * 8
}

func atomicLoad(b []byte, size int) uint64 {
	switch size {
	case 8:
		return atomic.LoadUint64((*uint64)(unsafe.Pointer(&b[0])))
	case 4:
		return uint64(atomic.LoadUint32((*uint32)(unsafe.Pointer(&b[0]))))
	case 2:
		w, shift := word32(b)
		return uint64(uint16(atomic.LoadUint32(w) >> shift))
	default:
		w, shift := word32(b)
		return uint64(uint8(atomic.LoadUint32(w) >> shift))
	}
}

func atomicStore(b []byte, size int, raw uint64) {
	switch size {
	case 8:
		atomic.StoreUint64((*uint64)(unsafe.Pointer(&b[0])), raw)
	case 4:
		atomic.StoreUint32((*uint32)(unsafe.Pointer(&b[0])), uint32(raw))
	default:
		w, shift := word32(b)
		var mask uint32 = 0xff
		if size == 2 {
			mask = 0xffff
		}
		for {
			old := atomic.LoadUint32(w)
			updated := old&^(mask<<shift) | (uint32(raw)&mask)<<shift
			if atomic.CompareAndSwapUint32(w, old, updated) {
				return
			}
		}
	}
}

// File: core/elem/kind.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package elem defines the closed set of numeric element kinds a view can
// carry, the Numeric element value, and the codec that moves single
// elements between raw buffer bytes and Numeric values.
package elem

// ContentType separates the two value families an element kind can hold.
// Kinds of different content types never convert into each other; mixing
// them is a type error, not a narrowing.
type ContentType int

const (
	ContentNumber ContentType = iota
	ContentBigInt
)

func (c ContentType) String() string {
	if c == ContentBigInt {
		return "BigInt"
	}
	return "Number"
}

// Kind enumerates the element kinds.
type Kind int

const (
	Int8 Kind = iota
	Uint8
	Uint8Clamped
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
	BigInt64
	BigUint64
)

// Size returns the element width in bytes.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8, Uint8Clamped:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	default:
		return 8
	}
}

// ContentType returns the value family of the kind.
func (k Kind) ContentType() ContentType {
	if k == BigInt64 || k == BigUint64 {
		return ContentBigInt
	}
	return ContentNumber
}

// IsFloat reports whether the kind stores IEEE-754 values.
func (k Kind) IsFloat() bool { return k == Float32 || k == Float64 }

func (k Kind) String() string {
	switch k {
	case Int8:
		return "Int8"
	case Uint8:
		return "Uint8"
	case Uint8Clamped:
		return "Uint8Clamped"
	case Int16:
		return "Int16"
	case Uint16:
		return "Uint16"
	case Int32:
		return "Int32"
	case Uint32:
		return "Uint32"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case BigInt64:
		return "BigInt64"
	case BigUint64:
		return "BigUint64"
	default:
		return "Kind(?)"
	}
}

// Kinds lists every element kind, in declaration order.
func Kinds() []Kind {
	return []Kind{
		Int8, Uint8, Uint8Clamped, Int16, Uint16,
		Int32, Uint32, Float32, Float64, BigInt64, BigUint64,
	}
}

// File: core/elem/numeric.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package elem

import (
	"math"
	"math/big"

	"github.com/momentics/typedbuf/api"
)

// Numeric is one element value: a Number (float64) or a BigInt.
type Numeric struct {
	big *big.Int
	num float64
}

// Number wraps a float64 element value.
func Number(f float64) Numeric { return Numeric{num: f} }

// BigInt wraps a BigInt element value.
func BigInt(i *big.Int) Numeric { return Numeric{big: i} }

// IsBigInt reports whether the value belongs to the BigInt family.
func (n Numeric) IsBigInt() bool { return n.big != nil }

// Float returns the Number value. Only meaningful when !IsBigInt.
func (n Numeric) Float() float64 { return n.num }

// Big returns the BigInt value. Only meaningful when IsBigInt.
func (n Numeric) Big() *big.Int { return n.big }

// Value returns the generic engine value (float64 or *big.Int).
func (n Numeric) Value() api.Value {
	if n.big != nil {
		return n.big
	}
	return n.num
}

// FromValue converts a generic value into the element family of the target
// kind. The target kind's content type governs the conversion; the
// conversion may run user code through an api.Valuer.
func FromValue(k Kind, v api.Value) (Numeric, error) {
	if k.ContentType() == ContentBigInt {
		b, err := api.ToBigInt(v)
		if err != nil {
			return Numeric{}, err
		}
		return BigInt(b), nil
	}
	f, err := api.ToNumber(v)
	if err != nil {
		return Numeric{}, err
	}
	return Number(f), nil
}

// Compare is the default sort comparator for kind k: a total numeric order
// for integer and BigInt kinds; for float kinds NaN sorts after everything
// and -0 sorts before +0.
func Compare(k Kind, x, y Numeric) int {
	if k.ContentType() == ContentBigInt {
		return x.big.Cmp(y.big)
	}
	a, b := x.num, y.num
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	case math.IsNaN(b):
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	case math.Signbit(a) && !math.Signbit(b):
		return -1
	case !math.Signbit(a) && math.Signbit(b):
		return 1
	default:
		return 0
	}
}

// SameValueZero equality: NaN equals NaN, +0 equals -0. Used by element
// searches that must find NaN.
func SameValueZero(x, y Numeric) bool {
	if x.IsBigInt() != y.IsBigInt() {
		return false
	}
	if x.IsBigInt() {
		return x.big.Cmp(y.big) == 0
	}
	if math.IsNaN(x.num) && math.IsNaN(y.num) {
		return true
	}
	return x.num == y.num
}

// StrictEquals equality: NaN never equals anything, +0 equals -0.
func StrictEquals(x, y Numeric) bool {
	if x.IsBigInt() != y.IsBigInt() {
		return false
	}
	if x.IsBigInt() {
		return x.big.Cmp(y.big) == 0
	}
	return x.num == y.num
}

// wrapUint truncates f toward zero and reduces it modulo 2^bits,
// producing the raw two's-complement bit pattern for integer kinds.
func wrapUint(f float64, bits uint) uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Trunc(f)
	mod := math.Exp2(float64(bits))
	r := math.Mod(t, mod)
	if r < 0 {
		r += mod
	}
	// r is in [0, 2^bits) and integral, so the conversion is exact for
	// bits <= 32; for bits == 64 values beyond 2^53 lose precision the
	// same way the source number already had.
	return uint64(r) & (math.MaxUint64 >> (64 - bits))
}

// clampUint8 implements the clamped conversion: out-of-range values pin to
// the bounds, NaN maps to 0, ties round to even.
func clampUint8(f float64) uint64 {
	if math.IsNaN(f) {
		return 0
	}
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint64(math.RoundToEven(f))
}

// two64 is the BigInt wrap modulus.
var two64 = new(big.Int).Lsh(big.NewInt(1), 64)

// wrapBig64 reduces b modulo 2^64 into its raw bit pattern.
func wrapBig64(b *big.Int) uint64 {
	if b.IsUint64() {
		return b.Uint64()
	}
	return new(big.Int).Mod(b, two64).Uint64()
}

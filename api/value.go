// File: api/value.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Generic value type and the abstract numeric conversions the subsystem
// consumes from its embedding engine. Conversions may execute user code
// through the Valuer hook, so every caller must treat them as reentrancy
// points and revalidate buffer bounds afterwards.

package api

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is the engine's generic value. Plain Go numerics, bools, strings,
// *big.Int and Valuer implementations are accepted by the conversions
// below; anything else fails with a type-kind error.
type Value = any

// Valuer is implemented by host objects whose numeric conversion runs user
// code (valueOf / Symbol.toPrimitive). ToPrimitive may detach or resize
// any buffer before returning.
type Valuer interface {
	ToPrimitive() (Value, error)
}

// MaxSafeInteger is the largest length representable without precision
// loss in the engine's Number type.
const MaxSafeInteger = 1<<53 - 1

// resolvePrimitive unwraps Valuer chains. The depth limit guards against
// hooks that keep returning further hooks.
func resolvePrimitive(v Value) (Value, error) {
	for i := 0; i < 8; i++ {
		valuer, ok := v.(Valuer)
		if !ok {
			return v, nil
		}
		var err error
		v, err = valuer.ToPrimitive()
		if err != nil {
			return nil, err
		}
	}
	return nil, NewTypeError("primitive conversion did not settle")
}

// ToNumber implements the engine's ToNumber abstract operation for the
// value shapes this subsystem can receive. BigInt values never convert
// implicitly; the mismatch is a type error.
func ToNumber(v Value) (float64, error) {
	v, err := resolvePrimitive(v)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return math.NaN(), nil
		}
		return f, nil
	case *big.Int:
		return 0, NewTypeError("cannot convert a BigInt value to a number")
	default:
		return 0, NewTypeError("cannot convert %T to a number", v)
	}
}

// ToBigInt implements the engine's ToBigInt abstract operation. Number
// values do not implicitly convert.
func ToBigInt(v Value) (*big.Int, error) {
	v, err := resolvePrimitive(v)
	if err != nil {
		return nil, err
	}
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return big.NewInt(int64(n)), nil
	case uint16:
		return big.NewInt(int64(n)), nil
	case uint32:
		return big.NewInt(int64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case bool:
		if n {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case string:
		b, ok := new(big.Int).SetString(strings.TrimSpace(n), 10)
		if !ok {
			return nil, NewTypeError("cannot parse %q as a BigInt", n)
		}
		return b, nil
	case float64, float32:
		return nil, NewTypeError("cannot convert a number value to a BigInt")
	default:
		return nil, NewTypeError("cannot convert %T to a BigInt", v)
	}
}

// ToIntegerOrInfinity converts v to an integral float64, mapping NaN to 0
// and preserving the infinities.
func ToIntegerOrInfinity(v Value) (float64, error) {
	n, err := ToNumber(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || n == 0 {
		return 0, nil
	}
	if math.IsInf(n, 0) {
		return n, nil
	}
	return math.Trunc(n), nil
}

// ToIndex converts v to an array index, failing with a range-kind error
// for negative or unsafely large values.
func ToIndex(v Value) (uint64, error) {
	if v == nil {
		return 0, nil
	}
	n, err := ToIntegerOrInfinity(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > MaxSafeInteger {
		return 0, NewRangeError("index %v out of safe integer range", n)
	}
	return uint64(n), nil
}

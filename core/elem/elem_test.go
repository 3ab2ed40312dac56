// File: core/elem/elem_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package elem_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/elem"
)

// roundTrip stores v into a scratch block and loads it back.
func roundTrip(t *testing.T, k elem.Kind, v elem.Numeric) elem.Numeric {
	t.Helper()
	var b [8]byte
	elem.Store(b[:], k, v, false, api.SeqCst)
	return elem.Load(b[:], k, false, api.SeqCst)
}

func TestStore_IntegerWrapping(t *testing.T) {
	// ToUint8 reduces modulo 256: 300 stores as 44.
	got := roundTrip(t, elem.Uint8, elem.Number(300))
	assert.Equal(t, float64(44), got.Float())

	got = roundTrip(t, elem.Int8, elem.Number(200))
	assert.Equal(t, float64(-56), got.Float())

	got = roundTrip(t, elem.Int16, elem.Number(-1))
	assert.Equal(t, float64(-1), got.Float())

	got = roundTrip(t, elem.Uint32, elem.Number(-1))
	assert.Equal(t, float64(math.MaxUint32), got.Float())

	// NaN and the infinities store as zero for integer kinds.
	got = roundTrip(t, elem.Int32, elem.Number(math.NaN()))
	assert.Equal(t, float64(0), got.Float())
	got = roundTrip(t, elem.Int32, elem.Number(math.Inf(1)))
	assert.Equal(t, float64(0), got.Float())
}

func TestStore_Uint8Clamped(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-5, 0},
		{300, 255},
		{254.5, 254}, // ties round to even
		{255.5, 255},
		{1.5, 2},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		got := roundTrip(t, elem.Uint8Clamped, elem.Number(c.in))
		assert.Equal(t, c.want, got.Float(), "clamp(%v)", c.in)
	}
}

func TestStore_FloatNarrowing(t *testing.T) {
	// Float32 narrows through IEEE single precision.
	got := roundTrip(t, elem.Float32, elem.Number(0.1))
	assert.Equal(t, float64(float32(0.1)), got.Float())

	// Float64 round-trips bit patterns exactly, including NaN and -0.
	got = roundTrip(t, elem.Float64, elem.Number(math.NaN()))
	assert.True(t, math.IsNaN(got.Float()))
	got = roundTrip(t, elem.Float64, elem.Number(math.Copysign(0, -1)))
	assert.True(t, math.Signbit(got.Float()))
}

func TestStore_BigIntWrapping(t *testing.T) {
	// 2^64 + 5 reduces modulo 2^64.
	huge := new(big.Int).Lsh(big.NewInt(1), 64)
	huge.Add(huge, big.NewInt(5))
	got := roundTrip(t, elem.BigUint64, elem.BigInt(huge))
	assert.Equal(t, "5", got.Big().String())

	got = roundTrip(t, elem.BigInt64, elem.BigInt(big.NewInt(-3)))
	assert.Equal(t, int64(-3), got.Big().Int64())

	// -1 as BigUint64 wraps to 2^64-1.
	got = roundTrip(t, elem.BigUint64, elem.BigInt(big.NewInt(-1)))
	assert.Equal(t, "18446744073709551615", got.Big().String())
}

func TestFromValue_ContentTypeGoverns(t *testing.T) {
	n, err := elem.FromValue(elem.BigInt64, big.NewInt(7))
	require.NoError(t, err)
	assert.True(t, n.IsBigInt())

	_, err = elem.FromValue(elem.BigInt64, 7.0)
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))

	_, err = elem.FromValue(elem.Int32, big.NewInt(7))
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))
}

func TestCompare_DefaultOrder(t *testing.T) {
	nan := elem.Number(math.NaN())
	negZero := elem.Number(math.Copysign(0, -1))
	zero := elem.Number(0)
	one := elem.Number(1)

	assert.Equal(t, 1, elem.Compare(elem.Float64, nan, one), "NaN sorts last")
	assert.Equal(t, -1, elem.Compare(elem.Float64, one, nan))
	assert.Equal(t, 0, elem.Compare(elem.Float64, nan, nan))
	assert.Equal(t, -1, elem.Compare(elem.Float64, negZero, zero), "-0 before +0")
	assert.Equal(t, -1, elem.Compare(elem.Float64, zero, one))

	a := elem.BigInt(big.NewInt(-2))
	b := elem.BigInt(big.NewInt(3))
	assert.Equal(t, -1, elem.Compare(elem.BigInt64, a, b))
}

func TestEquality_NaNAndZeroes(t *testing.T) {
	nan := elem.Number(math.NaN())
	negZero := elem.Number(math.Copysign(0, -1))
	zero := elem.Number(0)

	assert.True(t, elem.SameValueZero(nan, nan))
	assert.False(t, elem.StrictEquals(nan, nan))
	assert.True(t, elem.SameValueZero(negZero, zero))
	assert.True(t, elem.StrictEquals(negZero, zero))
}

func TestSharedCodec_SubWordStores(t *testing.T) {
	// An 8-byte aligned scratch block; byte stores under the shared path go
	// through CAS on the containing word and must not clobber neighbors.
	block := make([]byte, 8)
	for i := range block {
		elem.Store(block[i:], elem.Uint8, elem.Number(float64(i+1)), true, api.SeqCst)
	}
	for i := range block {
		got := elem.Load(block[i:], elem.Uint8, true, api.SeqCst)
		assert.Equal(t, float64(i+1), got.Float())
	}

	elem.Store(block, elem.Uint16, elem.Number(0xBEEF), true, api.SeqCst)
	got := elem.Load(block, elem.Uint16, true, api.SeqCst)
	assert.Equal(t, float64(0xBEEF), got.Float())
	// The neighbors above the stored word half stay intact.
	assert.Equal(t, float64(3), elem.Load(block[2:], elem.Uint8, true, api.SeqCst).Float())
}

func TestKind_Metadata(t *testing.T) {
	assert.Equal(t, 1, elem.Uint8.Size())
	assert.Equal(t, 8, elem.Float64.Size())
	assert.Equal(t, elem.ContentBigInt, elem.BigUint64.ContentType())
	assert.Equal(t, elem.ContentNumber, elem.Uint8Clamped.ContentType())
	assert.True(t, elem.Float32.IsFloat())
	assert.False(t, elem.Int32.IsFloat())
	assert.Len(t, elem.Kinds(), 11)
}

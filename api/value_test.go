// File: api/value_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/typedbuf/api"
)

type deferred struct{ v api.Value }

func (d deferred) ToPrimitive() (api.Value, error) { return d.v, nil }

func TestToNumber_Primitives(t *testing.T) {
	cases := []struct {
		in   api.Value
		want float64
	}{
		{nil, math.NaN()},
		{42, 42},
		{int64(-7), -7},
		{uint8(255), 255},
		{3.5, 3.5},
		{float32(1.5), 1.5},
		{true, 1},
		{false, 0},
		{"  12.5 ", 12.5},
		{"", 0},
		{"bogus", math.NaN()},
	}
	for _, c := range cases {
		got, err := api.ToNumber(c.in)
		require.NoError(t, err)
		if math.IsNaN(c.want) {
			assert.True(t, math.IsNaN(got), "ToNumber(%v)", c.in)
		} else {
			assert.Equal(t, c.want, got, "ToNumber(%v)", c.in)
		}
	}
}

func TestToNumber_RejectsBigInt(t *testing.T) {
	_, err := api.ToNumber(big.NewInt(1))
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))
}

func TestToBigInt_RejectsNumbers(t *testing.T) {
	_, err := api.ToBigInt(1.0)
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))
}

func TestToBigInt_Conversions(t *testing.T) {
	b, err := api.ToBigInt(int64(-5))
	require.NoError(t, err)
	assert.Equal(t, int64(-5), b.Int64())

	b, err = api.ToBigInt("18446744073709551616")
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", b.String())

	b, err = api.ToBigInt(true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.Int64())
}

func TestToNumber_ResolvesValuer(t *testing.T) {
	got, err := api.ToNumber(deferred{v: 9})
	require.NoError(t, err)
	assert.Equal(t, float64(9), got)
}

func TestToIntegerOrInfinity(t *testing.T) {
	got, err := api.ToIntegerOrInfinity(3.9)
	require.NoError(t, err)
	assert.Equal(t, float64(3), got)

	got, err = api.ToIntegerOrInfinity(-3.9)
	require.NoError(t, err)
	assert.Equal(t, float64(-3), got)

	got, err = api.ToIntegerOrInfinity(math.NaN())
	require.NoError(t, err)
	assert.Equal(t, float64(0), got)

	got, err = api.ToIntegerOrInfinity(math.Inf(1))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestToIndex_Bounds(t *testing.T) {
	got, err := api.ToIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	got, err = api.ToIndex(7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)

	_, err = api.ToIndex(-1)
	require.Error(t, err)
	assert.True(t, api.IsRangeError(err))

	_, err = api.ToIndex(math.Inf(1))
	require.Error(t, err)
	assert.True(t, api.IsRangeError(err))
}

func TestError_ContextAndKind(t *testing.T) {
	err := api.NewRangeError("bad length %d", 9).With("limit", 4)
	assert.True(t, api.IsRangeError(err))
	assert.False(t, api.IsTypeError(err))
	assert.Contains(t, err.Error(), "bad length 9")
}

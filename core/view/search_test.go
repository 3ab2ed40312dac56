// File: core/view/search_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/typedbuf/core/elem"
	"github.com/momentics/typedbuf/core/view"
)

func TestIncludes_SameValueZero(t *testing.T) {
	v := mustView(t, elem.Float64, 1.0, math.NaN(), math.Copysign(0, -1))

	got, err := v.Includes(math.NaN(), nil)
	require.NoError(t, err)
	assert.True(t, got, "Includes finds NaN")

	got, err = v.Includes(0.0, nil)
	require.NoError(t, err)
	assert.True(t, got, "-0 matches +0")

	got, err = v.Includes(2.0, nil)
	require.NoError(t, err)
	assert.False(t, got)

	// A fromIndex past the match misses it.
	got, err = v.Includes(1.0, 1)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIncludes_WrongContentType(t *testing.T) {
	v := mustView(t, elem.Int32, 1, 2)
	got, err := v.Includes(big.NewInt(1), nil)
	require.NoError(t, err)
	assert.False(t, got, "a BigInt never matches a Number element")
}

func TestIndexOf_StrictEquality(t *testing.T) {
	v := mustView(t, elem.Float64, 5.0, math.NaN(), 5.0)

	idx, err := v.IndexOf(5.0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), idx)

	idx, err = v.IndexOf(math.NaN(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), idx, "IndexOf never finds NaN")

	idx, err = v.IndexOf(5.0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), idx)

	idx, err = v.IndexOf(5.0, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), idx)
}

func TestLastIndexOf(t *testing.T) {
	v := mustView(t, elem.Uint8, 1, 2, 1, 3)

	idx, err := v.LastIndexOf(1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), idx)

	idx, err = v.LastIndexOf(1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), idx)

	idx, err = v.LastIndexOf(9, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), idx)

	idx, err = v.LastIndexOf(1, -2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), idx)
}

func TestSearch_BigIntElements(t *testing.T) {
	v, err := view.Of(elem.BigUint64, big.NewInt(7), big.NewInt(9))
	require.NoError(t, err)

	got, err := v.Includes(big.NewInt(9), nil)
	require.NoError(t, err)
	assert.True(t, got)

	idx, err := v.IndexOf(big.NewInt(7), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), idx)

	// A Number value never matches a BigInt element.
	idx, err = v.IndexOf(7.0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), idx)
}

func TestJoin_Formatting(t *testing.T) {
	v := mustView(t, elem.Float64, 1.0, 2.5, math.NaN(), math.Inf(1))
	got, err := v.Join(",")
	require.NoError(t, err)
	assert.Equal(t, "1,2.5,NaN,Infinity", got)

	b, err := view.Of(elem.BigInt64, big.NewInt(-3), big.NewInt(4))
	require.NoError(t, err)
	got, err = b.Join(", ")
	require.NoError(t, err)
	assert.Equal(t, "-3, 4", got)

	empty, err := view.New(elem.Uint8, 0)
	require.NoError(t, err)
	got, err = empty.Join(",")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

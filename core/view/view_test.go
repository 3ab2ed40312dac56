// File: core/view/view_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/buffer"
	"github.com/momentics/typedbuf/core/elem"
	"github.com/momentics/typedbuf/core/view"
)

func maxLen(n uint64) *uint64 { return &n }

func length(n uint64) *uint64 { return &n }

// mustView builds a view from plain values, failing the test on error.
func mustView(t *testing.T, k elem.Kind, vals ...api.Value) *view.View {
	t.Helper()
	v, err := view.Of(k, vals...)
	require.NoError(t, err)
	return v
}

// floats reads the whole view as float64 values.
func floats(t *testing.T, v *view.View) []float64 {
	t.Helper()
	out := make([]float64, 0, v.Len())
	for i := uint64(0); i < v.Len(); i++ {
		val, ok := v.Get(i)
		require.True(t, ok, "element %d", i)
		out = append(out, val.(float64))
	}
	return out
}

func TestNew_AllocatesZeroed(t *testing.T) {
	v, err := view.New(elem.Int32, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), v.Len())
	assert.Equal(t, uint64(16), v.ByteLength())
	assert.Equal(t, uint64(0), v.ByteOffset())
	assert.False(t, v.IsLengthTracking())
	assert.Equal(t, []float64{0, 0, 0, 0}, floats(t, v))
}

func TestOf_StoresConvertedValues(t *testing.T) {
	v := mustView(t, elem.Int16, 1, -2, 70000)
	// 70000 wraps through two's complement 16-bit: 70000 mod 65536 = 4464.
	assert.Equal(t, []float64{1, -2, 4464}, floats(t, v))
}

func TestNewFromBuffer_AlignmentAndRange(t *testing.T) {
	buf, err := buffer.Allocate(16, nil)
	require.NoError(t, err)

	_, err = view.NewFromBuffer(elem.Int32, buf, 3, nil)
	require.Error(t, err, "misaligned offset")
	assert.True(t, api.IsRangeError(err))

	_, err = view.NewFromBuffer(elem.Int32, buf, 8, length(3))
	require.Error(t, err, "range past the buffer end")
	assert.True(t, api.IsRangeError(err))

	v, err := view.NewFromBuffer(elem.Int32, buf, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.Len())
	assert.Equal(t, uint64(8), v.ByteOffset())
}

func TestNewFromBuffer_TrailingBytesFail(t *testing.T) {
	buf, err := buffer.Allocate(7, nil)
	require.NoError(t, err)
	_, err = view.NewFromBuffer(elem.Uint16, buf, 0, nil)
	require.Error(t, err)
	assert.True(t, api.IsRangeError(err))
}

func TestNewFromBuffer_LengthTracking(t *testing.T) {
	buf, err := buffer.Allocate(10, maxLen(20))
	require.NoError(t, err)

	v, err := view.NewFromBuffer(elem.Uint16, buf, 2, nil)
	require.NoError(t, err)
	require.True(t, v.IsLengthTracking())
	assert.Equal(t, uint64(4), v.Len())

	require.NoError(t, buf.Resize(20))
	assert.Equal(t, uint64(9), v.Len())

	require.NoError(t, buf.Resize(2))
	assert.Equal(t, uint64(0), v.Len())
	// An empty tracking view is still in bounds.
	n, err := v.Validate(api.SeqCst)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
}

func TestFixedView_GoesOutOfBoundsOnShrink(t *testing.T) {
	buf, err := buffer.Allocate(16, maxLen(16))
	require.NoError(t, err)
	v, err := view.NewFromBuffer(elem.Uint8, buf, 8, length(8))
	require.NoError(t, err)

	require.NoError(t, buf.Resize(8))
	assert.Equal(t, uint64(0), v.Len())
	assert.Equal(t, uint64(0), v.ByteLength())
	_, err = v.Validate(api.SeqCst)
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))

	// Growing the buffer back restores the view.
	require.NoError(t, buf.Resize(16))
	n, err := v.Validate(api.SeqCst)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), n)
}

func TestNewFromView_SameKindPreservesBits(t *testing.T) {
	src, err := view.New(elem.Float64, 2)
	require.NoError(t, err)
	// Plant a non-canonical NaN payload directly in the backing bytes.
	bytes, ok := src.Buffer().Bytes(api.SeqCst)
	require.True(t, ok)
	payload := math.Float64bits(math.NaN()) | 0xBEEF
	for i := 0; i < 8; i++ {
		bytes[i] = byte(payload >> (8 * i))
	}

	dst, err := view.NewFromView(elem.Float64, src)
	require.NoError(t, err)
	got, ok := dst.Buffer().Bytes(api.SeqCst)
	require.True(t, ok)
	assert.Equal(t, bytes[:8], got[:8], "NaN payload must survive a same-kind copy")
}

func TestNewFromView_CrossKindConverts(t *testing.T) {
	src := mustView(t, elem.Int32, 1, -1, 300)
	dst, err := view.NewFromView(elem.Uint8, src)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 255, 44}, floats(t, dst))
}

func TestNewFromView_ContentTypeMismatchFails(t *testing.T) {
	src := mustView(t, elem.Int32, 1, 2)
	_, err := view.NewFromView(elem.BigInt64, src)
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))
}

func TestFrom_AppliesMapFn(t *testing.T) {
	v, err := view.From(elem.Int32, view.Values{1, 2, 3}, func(val api.Value, i uint64) (api.Value, error) {
		n, err := api.ToNumber(val)
		if err != nil {
			return nil, err
		}
		return n * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, floats(t, v))
}

func TestIndexedGet_NonCanonicalIndices(t *testing.T) {
	v := mustView(t, elem.Uint8, 7)
	_, ok := v.IndexedGet(0.5)
	assert.False(t, ok)
	_, ok = v.IndexedGet(-1)
	assert.False(t, ok)
	_, ok = v.IndexedGet(math.Copysign(0, -1))
	assert.False(t, ok)
	_, ok = v.IndexedGet(1)
	assert.False(t, ok, "past the end")

	n, ok := v.IndexedGet(0)
	require.True(t, ok)
	assert.Equal(t, float64(7), n.Float())
}

func TestIndexedSet_DetachedIsNoOp(t *testing.T) {
	v := mustView(t, elem.Uint8, 1, 2)
	_, err := v.Buffer().Transfer()
	require.NoError(t, err)

	require.NoError(t, v.IndexedSet(0, 9), "write to a detached view is a defined no-op")
	_, ok := v.IndexedGet(0)
	assert.False(t, ok)
}

func TestIndexedSet_ConversionErrorSurfaces(t *testing.T) {
	v := mustView(t, elem.Uint8, 0)
	err := v.IndexedSet(0, big.NewInt(1))
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))
}

func TestAt_RelativeIndexing(t *testing.T) {
	v := mustView(t, elem.Int8, 10, 20, 30)

	got, err := v.At(-1)
	require.NoError(t, err)
	assert.Equal(t, float64(30), got)

	got, err = v.At(0)
	require.NoError(t, err)
	assert.Equal(t, float64(10), got)

	got, err = v.At(5)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = v.At(-4)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAt_DetachedFails(t *testing.T) {
	v := mustView(t, elem.Uint8, 1)
	_, err := v.Buffer().Transfer()
	require.NoError(t, err)

	_, err = v.At(0)
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))
}

func TestBigIntView_RoundTrip(t *testing.T) {
	v, err := view.Of(elem.BigInt64, big.NewInt(-5), big.NewInt(7))
	require.NoError(t, err)

	got, ok := v.Get(0)
	require.True(t, ok)
	assert.Equal(t, int64(-5), got.(*big.Int).Int64())

	// Number values never convert into a BigInt view.
	err = v.IndexedSet(1, 3.0)
	require.Error(t, err)
	assert.True(t, api.IsTypeError(err))
}

// File: core/view/search.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/elem"
	"github.com/momentics/typedbuf/internal/normalize"
)

// searchNumeric maps a search argument onto the view's element domain
// without conversion. A value of the wrong content type can never match
// a stored element, so ok=false short-circuits the scan.
func (v *View) searchNumeric(value api.Value) (elem.Numeric, bool) {
	if v.kind.ContentType() == elem.ContentBigInt {
		if b, ok := value.(*big.Int); ok {
			return elem.BigInt(b), true
		}
		return elem.Numeric{}, false
	}
	switch n := value.(type) {
	case *big.Int:
		return elem.Numeric{}, false
	case nil, bool, string:
		return elem.Numeric{}, false
	default:
		f, err := api.ToNumber(n)
		if err != nil {
			return elem.Numeric{}, false
		}
		return elem.Number(f), true
	}
}

// resolveFrom maps a relative fromIndex onto [0,length] for forward
// scans.
func resolveFrom(fromIndex api.Value, length uint64) (uint64, error) {
	n, err := api.ToIntegerOrInfinity(fromIndex)
	if err != nil {
		return 0, err
	}
	return normalize.Relative(n, length), nil
}

// Includes reports whether the view contains value, comparing with
// same-value-zero semantics: NaN matches NaN, -0 matches +0.
func (v *View) Includes(value, fromIndex api.Value) (bool, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return false, err
	}
	from, err := resolveFrom(fromIndex, length)
	if err != nil {
		return false, err
	}
	want, ok := v.searchNumeric(value)
	if !ok {
		return false, nil
	}
	for i := from; i < length; i++ {
		n, ok := v.IndexedGet(float64(i))
		if !ok {
			break
		}
		if elem.SameValueZero(want, n) {
			return true, nil
		}
	}
	return false, nil
}

// IndexOf returns the first index holding value, or -1. Strict equality
// applies, so NaN is never found.
func (v *View) IndexOf(value, fromIndex api.Value) (int64, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return -1, err
	}
	from, err := resolveFrom(fromIndex, length)
	if err != nil {
		return -1, err
	}
	want, ok := v.searchNumeric(value)
	if !ok {
		return -1, nil
	}
	for i := from; i < length; i++ {
		n, ok := v.IndexedGet(float64(i))
		if !ok {
			break
		}
		if elem.StrictEquals(want, n) {
			return int64(i), nil
		}
	}
	return -1, nil
}

// LastIndexOf returns the last index holding value at or before
// fromIndex (default: the last element), or -1.
func (v *View) LastIndexOf(value, fromIndex api.Value) (int64, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return -1, err
	}
	if length == 0 {
		return -1, nil
	}
	last := length - 1
	if fromIndex != nil {
		n, err := api.ToIntegerOrInfinity(fromIndex)
		if err != nil {
			return -1, err
		}
		if n < 0 {
			n += float64(length)
			if n < 0 {
				return -1, nil
			}
		}
		if n < float64(last) {
			last = uint64(n)
		}
	}
	want, ok := v.searchNumeric(value)
	if !ok {
		return -1, nil
	}
	for i := int64(last); i >= 0; i-- {
		n, ok := v.IndexedGet(float64(i))
		if !ok {
			continue
		}
		if elem.StrictEquals(want, n) {
			return i, nil
		}
	}
	return -1, nil
}

// Join renders the elements separated by sep, in the usual decimal
// notation: integral floats without an exponent, NaN and the infinities
// by name, BigInts exactly.
func (v *View) Join(sep string) (string, error) {
	length, err := v.Validate(api.SeqCst)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, length)
	for i := uint64(0); i < length; i++ {
		n, ok := v.IndexedGet(float64(i))
		if !ok {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, formatNumeric(n))
	}
	return strings.Join(parts, sep), nil
}

func formatNumeric(n elem.Numeric) string {
	if n.IsBigInt() {
		return n.Big().String()
	}
	f := n.Float()
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) <= api.MaxSafeInteger:
		return strconv.FormatInt(int64(f), 10)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

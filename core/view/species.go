// File: core/view/species.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package view

import (
	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/core/buffer"
)

// SpeciesFactory produces the derived view for operations that return a
// new array (slice, subarray). Create receives the exemplar view and the
// constructor arguments: either a single element count, or a buffer with
// a byte offset and an optional element length. Implementations stand in
// for user subclass constructors and may run arbitrary code; results are
// validated by the caller.
type SpeciesFactory interface {
	Create(exemplar *View, args []api.Value) (*View, error)
}

// DefaultFactory builds views of the exemplar's own kind through the
// ordinary constructors.
type DefaultFactory struct {
	Opts []buffer.Option
}

func (f DefaultFactory) Create(exemplar *View, args []api.Value) (*View, error) {
	if len(args) == 1 {
		if n, ok := numericArg(args[0]); ok {
			return New(exemplar.kind, n, f.Opts...)
		}
	}
	if len(args) >= 2 {
		if buf, ok := args[0].(*buffer.Buffer); ok {
			off, err := api.ToIndex(args[1])
			if err != nil {
				return nil, err
			}
			var length *uint64
			if len(args) >= 3 && args[2] != nil {
				n, err := api.ToIndex(args[2])
				if err != nil {
					return nil, err
				}
				length = &n
			}
			return NewFromBuffer(exemplar.kind, buf, off, length)
		}
	}
	return nil, api.NewTypeError("unsupported constructor arguments for a derived view")
}

func numericArg(v api.Value) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

// speciesCreate runs the factory and validates the result: it must be
// attached and in bounds, its content type must match the exemplar's,
// and when the arguments were a single element count it must hold at
// least that many elements. A nil factory falls back to DefaultFactory.
func speciesCreate(exemplar *View, factory SpeciesFactory, args []api.Value) (*View, error) {
	if factory == nil {
		factory = DefaultFactory{}
	}
	out, err := factory.Create(exemplar, args)
	if err != nil {
		return nil, err
	}
	length, err := out.Validate(api.SeqCst)
	if err != nil {
		return nil, err
	}
	if out.kind.ContentType() != exemplar.kind.ContentType() {
		return nil, api.NewTypeError(
			"derived %s view does not match the %s exemplar's content type", out.kind, exemplar.kind)
	}
	if len(args) == 1 {
		if want, ok := numericArg(args[0]); ok && length < want {
			return nil, api.NewTypeError(
				"derived view holds %d elements, need at least %d", length, want)
		}
	}
	return out, nil
}

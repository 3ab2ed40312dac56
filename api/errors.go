// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Structured error types shared across the typedbuf library.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures the way the embedding engine expects to
// surface them: range errors abort argument resolution, type errors abort
// operations on detached or incompatible objects.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota

	// ErrCodeRange covers invalid byte lengths, misaligned offsets,
	// construction ranges exceeding the buffer, and index overflow.
	ErrCodeRange

	// ErrCodeType covers operations on detached buffers or out-of-bounds
	// views, content-type mismatches, and invalid species results.
	ErrCodeType

	// ErrCodeInternal marks invariant violations inside the library.
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeRange:
		return "range"
	case ErrCodeType:
		return "type"
	case ErrCodeInternal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Error is a structured error with a code and optional context fields.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports code equality so callers can match via errors.Is against the
// exported sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code && (t.Message == "" || t.Message == e.Message)
	}
	return false
}

// With attaches a context field and returns the error for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any, 1)
	}
	e.Context[key] = value
	return e
}

// NewRangeError creates a range-kind error.
func NewRangeError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeRange, Message: fmt.Sprintf(format, args...)}
}

// NewTypeError creates a type-kind error.
func NewTypeError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeType, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError creates an internal invariant-violation error.
func NewInternalError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Sentinels usable with errors.Is for the most common failure classes.
var (
	ErrRange = &Error{Code: ErrCodeRange}
	ErrType  = &Error{Code: ErrCodeType}
)

// IsRangeError reports whether err carries ErrCodeRange.
func IsRangeError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRange
}

// IsTypeError reports whether err carries ErrCodeType.
func IsTypeError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeType
}

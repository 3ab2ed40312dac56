//go:build linux
// +build linux

// File: internal/alloc/alloc_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux data-block allocation via anonymous mmap for large blocks.

package alloc

import (
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

func (s *System) osAlloc(n int) ([]byte, error) {
	if n < osThreshold {
		return heapAlloc(n), nil
	}
	m, err := unix.Mmap(-1, 0, roundUp8(n),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		logrus.WithError(err).WithField("component", "typedbuf").
			Warn("mmap failed, falling back to heap allocation")
		return heapAlloc(n), nil
	}
	// mmap zero-fills; no explicit clear needed.
	s.mapped.Store(uintptr(unsafe.Pointer(&m[0])), m)
	return m[:n:len(m)], nil
}

func (s *System) osFree(b []byte) {
	base := uintptr(unsafe.Pointer(&b[:1][0]))
	full, ok := s.mapped.LoadAndDelete(base)
	if !ok {
		return // heap-backed, GC reclaims
	}
	if err := unix.Munmap(full.([]byte)); err != nil {
		logrus.WithError(err).WithField("component", "typedbuf").
			Warn("munmap failed")
	}
}

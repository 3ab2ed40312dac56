//go:build windows
// +build windows

// File: internal/alloc/alloc_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows data-block allocation via VirtualAlloc for large blocks.

package alloc

import (
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

var (
	kern32           = windows.NewLazySystemDLL("kernel32.dll")
	procVirtualAlloc = kern32.NewProc("VirtualAlloc")
	procVirtualFree  = kern32.NewProc("VirtualFree")
)

func (s *System) osAlloc(n int) ([]byte, error) {
	if n < osThreshold {
		return heapAlloc(n), nil
	}
	size := roundUp8(n)
	addr, _, err := procVirtualAlloc.Call(
		0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE,
	)
	if addr == 0 {
		logrus.WithError(err).WithField("component", "typedbuf").
			Warn("VirtualAlloc failed, falling back to heap allocation")
		return heapAlloc(n), nil
	}
	m := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	// VirtualAlloc commits zeroed pages; no explicit clear needed.
	s.mapped.Store(addr, m)
	return m[:n:size], nil
}

func (s *System) osFree(b []byte) {
	base := uintptr(unsafe.Pointer(&b[:1][0]))
	if _, ok := s.mapped.LoadAndDelete(base); !ok {
		return // heap-backed, GC reclaims
	}
	if r, _, err := procVirtualFree.Call(base, 0, windows.MEM_RELEASE); r == 0 {
		logrus.WithError(err).WithField("component", "typedbuf").
			Warn("VirtualFree failed")
	}
}

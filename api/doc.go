// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Contract layer for the typedbuf binary memory subsystem.
//
// api declares the error taxonomy, the memory-ordering parameter threaded
// through every length and element access, the generic value type with its
// abstract numeric conversions, and the allocator interface backing buffer
// storage. Implementations live under core/ and pool/; this package has no
// dependencies on them.
package api

// Package control
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Observability and runtime configuration for the typedbuf subsystem:
// a live-buffer registry with structured allocation/detach tracing, a
// metrics snapshot map, debug probes, and the tunables (allocation
// ceiling, pooling) consulted by the allocation path.
package control

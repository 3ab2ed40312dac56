// File: api/ordering.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Ordering is the consistency requirement for reads of a shared buffer's
// current length and detached state. Non-shared buffers ignore it.
//
// Every prototype-level operation validates under SeqCst so that bounds
// proofs rest on a globally consistent snapshot. Relaxed is reserved for
// opportunistic probes such as length getters and per-index bounds checks,
// where a stale (but never shorter-than-committed) answer is acceptable.
type Ordering int

const (
	// Relaxed permits a stale length observation. A relaxed read still
	// never reports a length the buffer has not actually committed.
	Relaxed Ordering = iota

	// SeqCst observes any concurrent grow from another agent before the
	// read returns.
	SeqCst
)

func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case SeqCst:
		return "seq-cst"
	default:
		return "unknown"
	}
}

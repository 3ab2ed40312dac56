// control/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread-safe runtime tunables with atomic snapshot and update listeners.

package control

import (
	"sync"
	"sync/atomic"
)

// Config carries the subsystem tunables.
type Config struct {
	// MaxBufferBytes bounds a single buffer allocation. Zero keeps the
	// allocator default.
	MaxBufferBytes uint64

	// PoolEnabled routes buffer storage through the size-classed block
	// pool instead of direct platform allocation.
	PoolEnabled bool

	// PoolClassCap caps the number of recycled blocks retained per size
	// class.
	PoolClassCap int

	// TraceAllocations enables per-buffer debug logging in the registry.
	TraceAllocations bool
}

// DefaultConfig returns the defaults used when nothing is applied.
func DefaultConfig() Config {
	return Config{
		PoolEnabled:  true,
		PoolClassCap: 256,
	}
}

var (
	current   atomic.Pointer[Config]
	listenMu  sync.Mutex
	listeners []func(Config)
)

func init() {
	cfg := DefaultConfig()
	current.Store(&cfg)
}

// Current returns the active configuration snapshot.
func Current() Config { return *current.Load() }

// Apply installs cfg and notifies listeners.
func Apply(cfg Config) {
	current.Store(&cfg)
	listenMu.Lock()
	hooks := make([]func(Config), len(listeners))
	copy(hooks, listeners)
	listenMu.Unlock()
	for _, fn := range hooks {
		fn(cfg)
	}
}

// OnUpdate registers a listener invoked on every Apply.
func OnUpdate(fn func(Config)) {
	listenMu.Lock()
	listeners = append(listeners, fn)
	listenMu.Unlock()
}

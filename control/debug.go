// control/debug.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import "sync"

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

var defaultProbes = NewDebugProbes()

// DefaultProbes is the process-wide probe registry. The buffer registry
// and the block pool register themselves here.
func DefaultProbes() *DebugProbes { return defaultProbes }

func init() {
	defaultProbes.RegisterProbe("buffers.live", func() any {
		return defaultRegistry.Live()
	})
	defaultProbes.RegisterProbe("metrics", func() any {
		return defaultMetrics.GetSnapshot()
	})
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

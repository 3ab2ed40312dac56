// control/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Live-buffer registry: every allocated buffer is tracked by identity
// until it is detached or finalized, giving leak visibility and structured
// allocation tracing.

package control

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "typedbuf")

// BufferInfo describes one tracked buffer.
type BufferInfo struct {
	ID         uuid.UUID
	ByteLength uint64
	MaxLength  uint64
	Shared     bool
	Resizable  bool
	CreatedAt  time.Time
}

// Registry tracks live buffers.
type Registry struct {
	mu      sync.RWMutex
	buffers map[uuid.UUID]BufferInfo
	metrics *MetricsRegistry
}

// NewRegistry creates an empty registry bound to a metrics sink.
func NewRegistry(metrics *MetricsRegistry) *Registry {
	return &Registry{
		buffers: make(map[uuid.UUID]BufferInfo),
		metrics: metrics,
	}
}

var defaultRegistry = NewRegistry(DefaultMetrics())

// DefaultRegistry is the process-wide buffer registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// TrackAllocate records a new buffer and returns its identity.
func (r *Registry) TrackAllocate(byteLen, maxLen uint64, shared, resizable bool) uuid.UUID {
	info := BufferInfo{
		ID:         uuid.New(),
		ByteLength: byteLen,
		MaxLength:  maxLen,
		Shared:     shared,
		Resizable:  resizable,
		CreatedAt:  time.Now(),
	}
	r.mu.Lock()
	r.buffers[info.ID] = info
	live := len(r.buffers)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.Add("buffers.allocated", 1)
		r.metrics.Set("buffers.live", live)
	}
	if Current().TraceAllocations {
		log.WithFields(logrus.Fields{
			"buffer":    info.ID,
			"bytes":     byteLen,
			"max":       maxLen,
			"shared":    shared,
			"resizable": resizable,
		}).Debug("buffer allocated")
	}
	return info.ID
}

// TrackResize updates the recorded length after a resize or grow.
func (r *Registry) TrackResize(id uuid.UUID, newLen uint64) {
	r.mu.Lock()
	if info, ok := r.buffers[id]; ok {
		info.ByteLength = newLen
		r.buffers[id] = info
	}
	r.mu.Unlock()
	if Current().TraceAllocations {
		log.WithFields(logrus.Fields{"buffer": id, "bytes": newLen}).
			Debug("buffer resized")
	}
}

// TrackDetach removes a buffer after detach (transfer) or final release.
func (r *Registry) TrackDetach(id uuid.UUID) {
	r.mu.Lock()
	delete(r.buffers, id)
	live := len(r.buffers)
	r.mu.Unlock()
	if r.metrics != nil {
		r.metrics.Add("buffers.detached", 1)
		r.metrics.Set("buffers.live", live)
	}
	if Current().TraceAllocations {
		log.WithField("buffer", id).Debug("buffer detached")
	}
}

// Live returns a snapshot of all tracked buffers.
func (r *Registry) Live() []BufferInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]BufferInfo, 0, len(r.buffers))
	for _, info := range r.buffers {
		out = append(out, info)
	}
	return out
}

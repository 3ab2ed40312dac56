// File: control/control_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/typedbuf/control"
)

func TestRegistry_TracksLifecycle(t *testing.T) {
	r := control.NewRegistry(control.NewMetricsRegistry())

	id := r.TrackAllocate(64, 64, false, false)
	live := r.Live()
	require.Len(t, live, 1)
	assert.Equal(t, id, live[0].ID)
	assert.Equal(t, uint64(64), live[0].ByteLength)

	r.TrackResize(id, 32)
	live = r.Live()
	require.Len(t, live, 1)
	assert.Equal(t, uint64(32), live[0].ByteLength)

	r.TrackDetach(id)
	assert.Empty(t, r.Live())
}

func TestRegistry_MetricsCounters(t *testing.T) {
	m := control.NewMetricsRegistry()
	r := control.NewRegistry(m)

	a := r.TrackAllocate(8, 8, false, false)
	b := r.TrackAllocate(8, 8, false, false)
	r.TrackDetach(a)

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap["buffers.allocated"])
	assert.Equal(t, int64(1), snap["buffers.detached"])
	assert.Equal(t, 1, snap["buffers.live"])
	_ = b
}

func TestConfig_ApplyAndNotify(t *testing.T) {
	orig := control.Current()
	defer control.Apply(orig)

	notified := false
	control.OnUpdate(func(c control.Config) { notified = true })

	next := orig
	next.TraceAllocations = true
	control.Apply(next)
	assert.True(t, control.Current().TraceAllocations)
	assert.True(t, notified)
}

func TestProbes_RegisterAndCollect(t *testing.T) {
	p := control.NewDebugProbes()
	p.RegisterProbe("answer", func() any { return 42 })
	got := p.DumpState()
	assert.Equal(t, 42, got["answer"])
}

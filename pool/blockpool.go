// File: pool/blockpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/typedbuf/api"
	"github.com/momentics/typedbuf/control"
	"github.com/momentics/typedbuf/internal/alloc"
)

// Predefined (power-of-four-ish) block size classes, in bytes. Every class
// is a multiple of 8, preserving the allocator alignment contract.
var sizeClasses = [...]int{
	256,
	1 * 1024,
	4 * 1024,
	16 * 1024,
	64 * 1024,
	256 * 1024,
	1 * 1024 * 1024,
}

// classFor returns the smallest class >= size, or 0 when the size is above
// the largest class and must bypass the pool.
func classFor(size int) int {
	for _, c := range sizeClasses {
		if size <= c {
			return c
		}
	}
	return 0
}

// classQueue is one free list. The FIFO keeps recently returned blocks
// circulating instead of piling up behind a stack of cold ones.
type classQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func (cq *classQueue) pop() ([]byte, bool) {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.q.Length() == 0 {
		return nil, false
	}
	return cq.q.Remove().([]byte), true
}

func (cq *classQueue) push(b []byte, cap int) bool {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.q.Length() >= cap {
		return false
	}
	cq.q.Add(b)
	return true
}

// BlockPool recycles buffer data blocks by size class. It satisfies
// api.Allocator.
type BlockPool struct {
	backing  api.Allocator
	classCap int
	classes  map[int]*classQueue

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	recycled   atomic.Int64
}

// New creates a pool over the given backing allocator. classCap bounds the
// retained blocks per class.
func New(backing api.Allocator, classCap int) *BlockPool {
	classes := make(map[int]*classQueue, len(sizeClasses))
	for _, c := range sizeClasses {
		classes[c] = &classQueue{q: queue.New()}
	}
	return &BlockPool{
		backing:  backing,
		classCap: classCap,
		classes:  classes,
	}
}

// Alloc returns a zero-filled block of exactly n bytes.
func (p *BlockPool) Alloc(n int) ([]byte, error) {
	p.totalAlloc.Add(1)
	class := classFor(n)
	if class == 0 {
		return p.backing.Alloc(n)
	}
	if b, ok := p.classes[class].pop(); ok {
		p.recycled.Add(1)
		return b[:n], nil
	}
	b, err := p.backing.Alloc(class)
	if err != nil {
		return nil, err
	}
	return b[:n], nil
}

// Free returns a block. Blocks matching a size class are zeroed and
// retained up to the class cap; everything else goes back to the backing
// allocator.
func (p *BlockPool) Free(b []byte) {
	p.totalFree.Add(1)
	class := cap(b)
	cq, ok := p.classes[class]
	if !ok {
		p.backing.Free(b)
		return
	}
	full := b[:class]
	clear(full)
	if !cq.push(full, p.classCap) {
		p.backing.Free(full)
	}
}

// Stats reports pool accounting.
func (p *BlockPool) Stats() api.AllocatorStats {
	allocd := p.totalAlloc.Load()
	freed := p.totalFree.Load()
	return api.AllocatorStats{
		TotalAlloc: allocd,
		TotalFree:  freed,
		InUse:      allocd - freed,
		Recycled:   p.recycled.Load(),
	}
}

var (
	defaultOnce sync.Once
	defaultPool *BlockPool
)

// Default returns the allocator buffers use when none is supplied: the
// shared block pool when pooling is enabled, the platform allocator
// otherwise.
func Default() api.Allocator {
	cfg := control.Current()
	if !cfg.PoolEnabled {
		return alloc.Default
	}
	defaultOnce.Do(func() {
		defaultPool = New(alloc.Default, cfg.PoolClassCap)
		control.DefaultProbes().RegisterProbe("pool.blocks", func() any {
			return defaultPool.Stats()
		})
	})
	return defaultPool
}

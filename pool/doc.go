// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Size-classed recycling of buffer data blocks. Buffer allocation and
// transfer churn through identically-sized blocks; the pool keeps a FIFO
// free list per size class and re-zeroes blocks on return so recycled
// storage is indistinguishable from fresh allocation. Blocks above the
// largest class pass straight through to the platform allocator.
package pool

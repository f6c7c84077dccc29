// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rwq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// block is a fixed-capacity circular buffer of T and the unit of
// allocation for the growable ring Queue[T] is built from.
//
// front, tail, and next each live on their own cache line: front is
// written only by the consumer, tail only by the producer, and next only
// by the producer but read by the consumer — isolating them prevents
// false sharing across the producer/consumer boundary.
//
// One slot is always left empty so that front == tail is an unambiguous
// "empty" signal; a full block is front == (tail+1) & mask.
type block[T any] struct {
	_     pad
	front atomix.Uint64 // next slot to read; consumer-owned
	_     pad
	tail  atomix.Uint64 // next slot to write; producer-owned
	_     pad
	next  atomic.Pointer[block[T]] // producer-owned, consumer-read
	_     pad
	data  []T
	mask  uint64
}

// newBlock allocates a block with capacity size, which must be a power
// of two. front and tail start at 0 (empty); next starts nil.
func newBlock[T any](size int) *block[T] {
	b := &block[T]{
		data: make([]T, size),
		mask: uint64(size - 1),
	}
	b.front.StoreRelaxed(0)
	b.tail.StoreRelaxed(0)
	return b
}

// write places v into slot i of the block (mod size already applied by
// the caller). It does not touch front/tail.
func (b *block[T]) write(i uint64, v T) {
	b.data[i&b.mask] = v
}

// clear zeroes slot i so the garbage collector can reclaim anything v
// referenced. It does not touch front/tail.
func (b *block[T]) clear(i uint64) {
	var zero T
	b.data[i&b.mask] = zero
}

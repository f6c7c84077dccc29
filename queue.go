// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rwq

import "sync/atomic"

// Queue is a growable SPSC FIFO queue of T.
//
// frontBlock and tailBlock each live on their own cache line; both are
// read by both goroutines but each is written by only one of them.
// largestBlockSize is producer-private and never read by the consumer.
type Queue[T any] struct {
	_                pad
	frontBlock       atomic.Pointer[block[T]] // consumer-owned
	_                pad
	tailBlock        atomic.Pointer[block[T]] // producer-owned
	_                pad
	largestBlockSize int // producer-private

	producerInSection bool
	consumerInSection bool
}

// NewQueue creates a queue that can hold maxSize elements without further
// allocation. maxSize must be >= 1; NewQueue panics otherwise.
func NewQueue[T any](maxSize int) *Queue[T] {
	if maxSize < 1 {
		panic("rwq: maxSize must be >= 1")
	}
	size := ceilPow2(maxSize + 1)
	first := newBlock[T](size)
	first.next.Store(first)

	q := &Queue[T]{largestBlockSize: size}
	q.frontBlock.Store(first)
	q.tailBlock.Store(first)
	return q
}

// TryEnqueue adds v to the queue (producer only). It never allocates; if
// the current Block is full and there is no empty Block already linked
// ahead of it, it returns ErrWouldBlock instead of growing.
func (q *Queue[T]) TryEnqueue(v T) error {
	q.enterProduce()
	defer q.exitProduce()
	return q.enqueue(v, false)
}

// Enqueue adds v to the queue (producer only), growing the ring with a
// new, larger Block if necessary. It does not fail.
func (q *Queue[T]) Enqueue(v T) {
	q.enterProduce()
	defer q.exitProduce()
	_ = q.enqueue(v, true)
}

func (q *Queue[T]) enqueue(v T, allowAlloc bool) error {
	tb := q.tailBlock.Load()

	blockFront := tb.front.LoadAcquire()
	blockTail := tb.tail.LoadRelaxed()
	nextTail := (blockTail + 1) & tb.mask

	if nextTail != blockFront {
		// Case A: room in the current block.
		tb.write(blockTail, v)
		tb.tail.StoreRelease(nextTail)
		return nil
	}

	next := tb.next.Load()
	if next != q.frontBlock.Load() {
		// Case B: the next block exists and is empty (by the ring
		// invariant: every block strictly between frontBlock and
		// tailBlock is completely full, so next being reachable here
		// and not equal to frontBlock means it is the slack block). A
		// drained block's front/tail sit wherever the consumer left
		// them, not necessarily 0, so write at its own tail index.
		nextTail := next.tail.LoadRelaxed()
		next.write(nextTail, v)
		next.tail.StoreRelease((nextTail + 1) & next.mask)
		q.tailBlock.Store(next)
		return nil
	}

	// Case C: ring is fully packed; grow, or fail.
	if !allowAlloc {
		return ErrWouldBlock
	}

	q.largestBlockSize *= 2
	nb := newBlock[T](q.largestBlockSize)
	nb.write(0, v)
	nb.tail.StoreRelaxed(1)
	nb.next.Store(tb.next.Load())
	tb.next.Store(nb)
	q.tailBlock.Store(nb)
	return nil
}

// TryDequeue removes and returns the element at the head of the queue
// (consumer only). It returns the zero value of T and ErrWouldBlock if
// the queue is empty.
func (q *Queue[T]) TryDequeue() (T, error) {
	q.enterConsume()
	defer q.exitConsume()

	fb, blockFront, ok := q.dequeuePosition()
	if !ok {
		var zero T
		return zero, ErrWouldBlock
	}
	v := fb.data[blockFront]
	fb.clear(blockFront)
	fb.front.StoreRelease((blockFront + 1) & fb.mask)
	return v, nil
}

// Peek returns a pointer to the element at the head of the queue without
// removing it, or nil if the queue is empty. The pointer is invalidated
// by the next consumer operation on this queue.
func (q *Queue[T]) Peek() *T {
	q.enterConsume()
	defer q.exitConsume()

	fb, blockFront, ok := q.dequeuePosition()
	if !ok {
		return nil
	}
	return &fb.data[blockFront]
}

// Pop removes the element at the head of the queue without returning it.
// It reports whether an element was removed.
func (q *Queue[T]) Pop() bool {
	q.enterConsume()
	defer q.exitConsume()

	fb, blockFront, ok := q.dequeuePosition()
	if !ok {
		return false
	}
	fb.clear(blockFront)
	fb.front.StoreRelease((blockFront + 1) & fb.mask)
	return true
}

// dequeuePosition implements steps 1-2 and the Case A/B advance shared by
// TryDequeue, Peek, and Pop: it returns the block and in-block index the
// next element is at, advancing frontBlock across empty blocks as
// needed, and ok=false if the queue is empty.
func (q *Queue[T]) dequeuePosition() (*block[T], uint64, bool) {
	tailAtStart := q.tailBlock.Load()

	fb := q.frontBlock.Load()
	blockFront := fb.front.LoadRelaxed()
	blockTail := fb.tail.LoadAcquire()

	if blockFront != blockTail {
		return fb, blockFront, true
	}

	if fb == tailAtStart {
		// Case C: genuinely empty. tailBlock is snapshotted before the
		// front/tail read: otherwise the producer could fill this block
		// and advance tailBlock in between, and a stale "at tail" check
		// would report empty while a filled block was waiting.
		return nil, 0, false
	}

	// Case B: this block is drained; by the ring invariant every block
	// strictly between frontBlock and tailBlock is completely full, so
	// next is itself non-empty (the original asserts next.front !=
	// next.tail here rather than re-checking it).
	next := fb.next.Load()
	q.frontBlock.Store(next)
	return next, next.front.LoadRelaxed(), true
}

// SizeApprox returns an approximate count of elements currently queued.
// It is approximate because front/tail are sampled per-block without
// mutual consistency; concurrently with producer/consumer activity the
// true size may differ, but the result is always in
// [0, tail_samples - front_samples] for the interval of the call.
func (q *Queue[T]) SizeApprox() int {
	total := uint64(0)
	cur := q.frontBlock.Load()
	tb := q.tailBlock.Load()
	for {
		front := cur.front.LoadRelaxed()
		tail := cur.tail.LoadRelaxed()
		total += (tail - front) & cur.mask
		if cur == tb {
			break
		}
		cur = cur.next.Load()
	}
	return int(total)
}

// Close drains any elements still resident in the queue and returns them
// in enqueue order, zeroing each slot behind them so their storage can be
// garbage collected. It is not safe to call concurrently with
// TryEnqueue/Enqueue/TryDequeue/Peek/Pop — the caller must ensure both
// the producer and consumer roles have stopped operating on the queue
// first.
func (q *Queue[T]) Close() []T {
	var residual []T
	cur := q.frontBlock.Load()
	tb := q.tailBlock.Load()
	for {
		front := cur.front.LoadRelaxed()
		tail := cur.tail.LoadRelaxed()
		for i := front; i != tail; i = (i + 1) & cur.mask {
			residual = append(residual, cur.data[i&cur.mask])
			cur.clear(i)
		}
		if cur == tb {
			return residual
		}
		cur = cur.next.Load()
	}
}

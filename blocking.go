// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rwq

import (
	"context"
	"time"

	"code.hybscloud.com/iox"
)

// semCapacity bounds the "items available" signal channel. It is not a
// bound on the queue itself (Enqueue still grows without limit); it only
// caps how many outstanding signals can be buffered before a producer's
// Enqueue/TryEnqueue would itself block on the semaphore send. struct{}
// has zero size, so a channel this deep costs no per-slot memory.
const semCapacity = 1 << 30

// BlockingQueue wraps a Queue[T] with a counting semaphore representing
// "items available", giving the consumer a WaitDequeue primitive on top
// of the otherwise non-blocking core.
//
// The semaphore is a buffered chan struct{}, not
// golang.org/x/sync/semaphore.Weighted: Weighted models weight *held* by
// its own caller and panics if Release is called without a matching
// prior Acquire, so it cannot be driven by a producer signaling
// availability from zero the way this wrapper needs — a channel used as
// a token bucket is the idiomatic Go primitive for that shape of
// counting signal instead.
type BlockingQueue[T any] struct {
	q   *Queue[T]
	sem chan struct{}
}

// NewBlockingQueue creates a blocking queue that can hold maxSize
// elements without further allocation. See NewQueue for maxSize's panic
// behavior and the package doc for its rounding.
func NewBlockingQueue[T any](maxSize int) *BlockingQueue[T] {
	return &BlockingQueue[T]{
		q:   NewQueue[T](maxSize),
		sem: make(chan struct{}, semCapacity),
	}
}

// TryEnqueue forwards to the inner queue's TryEnqueue and, on success,
// signals the semaphore.
func (bq *BlockingQueue[T]) TryEnqueue(v T) error {
	if err := bq.q.TryEnqueue(v); err != nil {
		return err
	}
	bq.sem <- struct{}{}
	return nil
}

// Enqueue forwards to the inner queue's Enqueue and signals the
// semaphore.
func (bq *BlockingQueue[T]) Enqueue(v T) {
	bq.q.Enqueue(v)
	bq.sem <- struct{}{}
}

// TryDequeue first non-blockingly claims one unit of the semaphore, then
// dequeues from the inner queue. If the inner dequeue unexpectedly fails,
// the semaphore unit is restored before returning ErrWouldBlock.
func (bq *BlockingQueue[T]) TryDequeue() (T, error) {
	select {
	case <-bq.sem:
	default:
		var zero T
		return zero, ErrWouldBlock
	}
	v, err := bq.q.TryDequeue()
	if err != nil {
		bq.sem <- struct{}{}
		return v, err
	}
	return v, nil
}

// WaitDequeue blocks until an element is available or ctx is done. A
// semaphore signal guarantees at least one element has been enqueued and
// that enqueue's release fence precedes the signal, so the loop below
// almost always succeeds on its first iteration; it still tolerates
// transient failure rather than assuming that.
func (bq *BlockingQueue[T]) WaitDequeue(ctx context.Context) (T, error) {
	select {
	case <-bq.sem:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	backoff := iox.Backoff{}
	for {
		v, err := bq.q.TryDequeue()
		if err == nil {
			return v, nil
		}
		backoff.Wait()
	}
}

// WaitDequeueTimed blocks until an element is available or timeout
// elapses, reporting false in the latter case without touching the inner
// queue.
func (bq *BlockingQueue[T]) WaitDequeueTimed(timeout time.Duration) (T, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	v, err := bq.WaitDequeue(ctx)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// Peek forwards to the inner queue's Peek.
func (bq *BlockingQueue[T]) Peek() *T {
	return bq.q.Peek()
}

// Pop claims one semaphore unit, pops from the inner queue, and restores
// the unit if the pop unexpectedly fails.
func (bq *BlockingQueue[T]) Pop() bool {
	select {
	case <-bq.sem:
	default:
		return false
	}
	if !bq.q.Pop() {
		bq.sem <- struct{}{}
		return false
	}
	return true
}

// SizeApprox forwards to the inner queue's SizeApprox.
func (bq *BlockingQueue[T]) SizeApprox() int {
	return bq.q.SizeApprox()
}

// Close forwards to the inner queue's Close.
func (bq *BlockingQueue[T]) Close() []T {
	return bq.q.Close()
}

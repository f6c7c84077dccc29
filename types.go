// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rwq

// Producer is the producer-side interface implemented by both Queue[T]
// and BlockingQueue[T]. Only one goroutine may call Producer methods on
// a given queue for its lifetime.
type Producer[T any] interface {
	// TryEnqueue adds v without allocating. Returns ErrWouldBlock if the
	// ring has no slack and adding a Block was not permitted.
	TryEnqueue(v T) error
	// Enqueue adds v, growing the ring with a new Block if necessary.
	Enqueue(v T)
}

// Consumer is the consumer-side interface implemented by both Queue[T]
// and BlockingQueue[T]. Only one goroutine, distinct from the Producer's,
// may call Consumer methods on a given queue for its lifetime.
type Consumer[T any] interface {
	// TryDequeue removes and returns the head element, or the zero value
	// and ErrWouldBlock if the queue is empty.
	TryDequeue() (T, error)
	// Peek returns a pointer to the head element without removing it, or
	// nil if the queue is empty.
	Peek() *T
	// Pop removes the head element without returning it. Reports whether
	// an element was removed.
	Pop() bool
	// SizeApprox returns an approximate count of queued elements.
	SizeApprox() int
}

// Queuer combines Producer and Consumer. Both *Queue[T] and
// *BlockingQueue[T] satisfy it.
type Queuer[T any] interface {
	Producer[T]
	Consumer[T]
}

var (
	_ Queuer[int] = (*Queue[int])(nil)
	_ Queuer[int] = (*BlockingQueue[int])(nil)
)

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rwq provides a growable single-producer, single-consumer
// (SPSC) FIFO queue.
//
// Unlike a fixed-capacity ring buffer, Queue[T] grows by linking in
// additional Blocks — never shrinking, never reusing a Block for a
// different size — when the producer catches up to the consumer. Growth
// is amortized: each new Block doubles the previous one's size, so
// holding n elements takes O(lg n) Blocks, and both the Close walk and
// SizeApprox stay cheap regardless of how much the queue has
// grown over its lifetime.
//
// # Design
//
// The queue is a circular singly-linked list of Blocks. Each Block is
// itself a small circular buffer with a front index (next slot to read)
// and a tail index (next slot to write). The producer goroutine owns
// every tail index and every Block's next pointer; the consumer
// goroutine owns every front index and the queue's frontBlock pointer.
// Both goroutines read the other's fields, but only the owner ever
// writes them — so the whole algorithm needs no locks, only a carefully
// ordered sequence of atomic loads, stores, and the acquire/release
// fences that make the loads and stores visible in the right order.
//
//	producer: TryEnqueue/Enqueue write at tailBlock.tail
//	consumer: TryDequeue/Peek/Pop read from frontBlock.front
//
// Enqueue/Dequeue are wait-free whenever the current Block has room (or,
// for Dequeue, whenever the current Block isn't empty): each completes
// in a bounded number of steps with no retry loop. Enqueue may allocate
// a new Block when none of the existing slack ahead of the tail is free,
// which is the only place the producer can block (inside the Go
// allocator).
//
// # Basic usage
//
//	q := rwq.NewQueue[int](64)
//
//	go func() { // producer goroutine
//	    for i := range 1000 {
//	        q.Enqueue(i) // grows as needed, never fails
//	    }
//	}()
//
//	go func() { // consumer goroutine
//	    backoff := iox.Backoff{}
//	    for n := 0; n < 1000; {
//	        v, err := q.TryDequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(v)
//	        n++
//	    }
//	}()
//
// For a blocking consumer, wrap the queue (or construct one directly)
// with [NewBlockingQueue], which layers a counting semaphore on top of
// the same core and adds [BlockingQueue.WaitDequeue] and
// [BlockingQueue.WaitDequeueTimed]:
//
//	bq := rwq.NewBlockingQueue[int](64)
//	go func() {
//	    for i := range 1000 {
//	        bq.Enqueue(i)
//	    }
//	}()
//	for n := 0; n < 1000; n++ {
//	    v, err := bq.WaitDequeue(context.Background())
//	    if err != nil {
//	        break // ctx canceled
//	    }
//	    process(v)
//	}
//
// # Thread safety
//
// Exactly one goroutine may call the producer operations (TryEnqueue,
// Enqueue) for the lifetime of the queue, and exactly one distinct
// goroutine may call the consumer operations (TryDequeue, Peek, Pop).
// Switching which goroutine plays a role mid-lifetime is only safe if the
// caller establishes a full happens-before edge (e.g. a channel send/
// receive) between the old role-holder's last operation and the new
// one's first — the queue itself provides no such edge across a role
// swap. Violating single-producer/single-consumer discipline corrupts
// the queue's invariants; it is not merely slow.
//
// # Capacity and growth
//
// NewQueue(maxSize) rounds maxSize+1 up to the next power of two and
// allocates one Block of that size — the +1 accounts for the one slot
// every Block wastes to keep front==tail an unambiguous empty signal.
// Capacity grows automatically under Enqueue (never under TryEnqueue,
// which returns [ErrWouldBlock] instead once the ring is fully packed);
// each growth doubles the previous Block's size.
//
// SizeApprox returns an approximate element count: front/tail are
// sampled per-Block without mutual consistency, so the result can lag
// reality during concurrent access, but it is always between 0 and the
// true size at some instant during the call.
//
// # Closing
//
// Queue[T] is not an io.Closer in the usual sense — nothing needs
// flushing — but [Queue.Close] collects and zeroes every slot still
// holding a live element, in enqueue order, and returns them, so the
// garbage collector can reclaim anything those elements referenced and
// a caller (or a test) can observe exactly what was still resident. It
// is not safe to call concurrently with any producer or consumer
// operation; the caller must ensure both roles have stopped first.
//
// # Race detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established purely through
// atomic loads and stores on independent variables. This package's
// correctness rests on exactly that kind of ordering (see "Design"
// above), so concurrent producer/consumer tests are skipped when the
// race detector is active; see [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering and [code.hybscloud.com/iox] for
// semantic errors and backoff. [BlockingQueue]'s counting semaphore is a
// buffered channel rather than a third-party primitive; see its doc
// comment for why.
package rwq

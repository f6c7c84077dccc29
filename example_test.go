// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rwq_test

import (
	"fmt"

	"code.hybscloud.com/rwq"
)

// ExampleNewQueue demonstrates a basic SPSC queue for pipeline stages.
func ExampleNewQueue() {
	q := rwq.NewQueue[int](8)

	for i := 1; i <= 5; i++ {
		q.Enqueue(i * 10)
	}

	for range 5 {
		v, _ := q.TryDequeue()
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleQueue_TryEnqueue demonstrates the non-blocking, non-allocating
// fast path, and its ErrWouldBlock signal once the ring is packed.
func ExampleQueue_TryEnqueue() {
	q := rwq.NewQueue[int](1)

	for i := 1; i <= 2; i++ {
		err := q.TryEnqueue(i)
		fmt.Println(rwq.IsWouldBlock(err))
	}

	// Output:
	// false
	// true
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build rwqdebug

package rwq

// enterProduce/exitProduce and enterConsume/exitConsume detect a
// producer or consumer operation being re-entered from within itself —
// e.g. a T value's field access somehow calling back into the same
// queue. The guard is a plain bool: it is only ever touched by the one
// goroutine that owns the corresponding role, so it needs no atomic.
//
// Builds tagged rwqdebug pay for this check; default builds do not (see
// reentrancy_release.go), matching the original specification's "debug
// builds abort, release builds are undefined behavior" contract.

func (q *Queue[T]) enterProduce() {
	if q.producerInSection {
		panic("rwq: producer operation re-entered from within itself")
	}
	q.producerInSection = true
}

func (q *Queue[T]) exitProduce() {
	q.producerInSection = false
}

func (q *Queue[T]) enterConsume() {
	if q.consumerInSection {
		panic("rwq: consumer operation re-entered from within itself")
	}
	q.consumerInSection = true
}

func (q *Queue[T]) exitConsume() {
	q.consumerInSection = false
}

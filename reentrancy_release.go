// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !rwqdebug

package rwq

// Release builds skip the reentrancy check entirely — re-entering a
// producer or consumer operation from within itself is undefined
// behavior, exactly as in the original specification's release-mode
// contract. Build with -tags rwqdebug to enable the check.

func (q *Queue[T]) enterProduce() {}

func (q *Queue[T]) exitProduce() {}

func (q *Queue[T]) enterConsume() {}

func (q *Queue[T]) exitConsume() {}

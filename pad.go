// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rwq

// pad is cache line padding to prevent false sharing between
// producer-owned and consumer-owned fields.
type pad [64]byte

// ceilPow2 rounds n up to the next power of 2. n must be >= 1.
func ceilPow2(n int) int {
	if n < 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

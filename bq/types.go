// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import "errors"

// ErrWouldBlock indicates the operation cannot proceed immediately: the
// queue is full (Enqueue) or empty (Dequeue). Callers retry with backoff
// rather than treating it as a failure.
var ErrWouldBlock = errors.New("bq: would block")

// Queue is the combined producer-consumer interface for a bounded FIFO.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer enqueues by pointer so the caller controls the copy.
type Producer[T any] interface {
	Enqueue(elem *T) error
}

// Consumer dequeues by value.
type Consumer[T any] interface {
	Dequeue() (T, error)
}

// Drainer signals that no more enqueues will occur, letting consumers skip
// the livelock-prevention threshold check and drain what remains.
type Drainer interface {
	Drain()
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
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

// pad is cache line padding to prevent false sharing between hot fields
// that different goroutines write.
type pad [64]byte

// padShort is a cache line less the 8-byte cycle field; placed at the end
// of a slot struct, it keeps adjacent slots' cycle fields at least a cache
// line apart.
type padShort [64 - 8]byte

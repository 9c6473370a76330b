// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import "code.hybscloud.com/lfcore/atomic"

// SPSC is a single-producer single-consumer bounded queue based on
// Lamport's ring buffer with cached-index optimization: the producer
// caches the consumer's dequeue index and vice versa, cutting cross-core
// cache-line traffic on the common path.
type SPSC[T any] struct {
	_          pad
	head       atomic.Cell[uint64] // consumer reads from here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomic.Cell[uint64] // producer writes here
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// NewSPSC creates a new SPSC queue. Capacity rounds up to the next power of 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 2 {
		panic("bq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Enqueue adds an element (producer only). Returns ErrWouldBlock if full.
func (q *SPSC[T]) Enqueue(elem *T) error {
	tail := q.tail.Load(atomic.Relaxed)
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.Load(atomic.Acquire)
		if tail-q.cachedHead > q.mask {
			return ErrWouldBlock
		}
	}

	q.buffer[tail&q.mask] = *elem
	q.tail.Store(tail+1, atomic.Release)
	return nil
}

// Dequeue removes and returns an element (consumer only).
func (q *SPSC[T]) Dequeue() (T, error) {
	head := q.head.Load(atomic.Relaxed)
	if head >= q.cachedTail {
		q.cachedTail = q.tail.Load(atomic.Acquire)
		if head >= q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.buffer[head&q.mask]
	var zero T
	q.buffer[head&q.mask] = zero
	q.head.Store(head+1, atomic.Release)
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSC[T]) Cap() int { return int(q.mask + 1) }

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
)

// MPSC is an FAA-based multi-producer single-consumer bounded queue.
// Producers claim positions via FAA (SCQ-style), requiring 2n physical
// slots for capacity n.
type MPSC[T any] struct {
	_        pad
	head     atomic.Cell[uint64] // single consumer writes, producers read
	_        pad
	tail     atomic.Cell[uint64] // producer index (FAA)
	_        pad
	draining atomic.BoolCell
	_        pad
	buffer   []mpscSlot[T]
	capacity uint64
	size     uint64
	mask     uint64
}

type mpscSlot[T any] struct {
	cycle atomic.Cell[uint64]
	data  T
	_     padShort
}

// NewMPSC creates a new FAA-based MPSC queue. Capacity rounds up to the
// next power of 2.
func NewMPSC[T any](capacity int) *MPSC[T] {
	if capacity < 2 {
		panic("bq: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	size := n * 2

	q := &MPSC[T]{
		buffer:   make([]mpscSlot[T], size),
		capacity: n,
		size:     size,
		mask:     size - 1,
	}
	for i := uint64(0); i < size; i++ {
		q.buffer[i].cycle.Store(i/n, atomic.Relaxed)
	}
	return q
}

// Drain signals that no more enqueues will occur.
func (q *MPSC[T]) Drain() { q.draining.Store(true, atomic.Release) }

// Enqueue adds an element (multiple producers safe). Returns ErrWouldBlock if full.
func (q *MPSC[T]) Enqueue(elem *T) error {
	var bo backoff.LockDefault
	for {
		tail := q.tail.Load(atomic.Acquire)
		head := q.head.Load(atomic.Relaxed)
		if tail >= head+q.capacity {
			return ErrWouldBlock
		}

		myTail := q.tail.Add(1, atomic.AcqRel)

		slot := &q.buffer[myTail&q.mask]
		expectedCycle := myTail / q.capacity
		slotCycle := slot.cycle.Load(atomic.Acquire)

		if slotCycle == expectedCycle {
			slot.data = *elem
			slot.cycle.Store(expectedCycle+1, atomic.Release)
			return nil
		}
		if int64(slotCycle) < int64(expectedCycle) {
			return ErrWouldBlock
		}
		bo.Once()
	}
}

// Dequeue removes and returns an element (single consumer only).
func (q *MPSC[T]) Dequeue() (T, error) {
	head := q.head.Load(atomic.Relaxed)
	cycle := head / q.capacity
	slot := &q.buffer[head&q.mask]

	slotCycle := slot.cycle.Load(atomic.Acquire)
	if slotCycle != cycle+1 {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := slot.data
	var zero T
	slot.data = zero
	nextEnqCycle := (head + q.size) / q.capacity
	slot.cycle.Store(nextEnqCycle, atomic.Release)
	q.head.Store(head+1, atomic.Relaxed)
	return elem, nil
}

// Cap returns the queue capacity.
func (q *MPSC[T]) Cap() int { return int(q.capacity) }

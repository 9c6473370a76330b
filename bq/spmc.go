// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
)

// SPMC is an FAA-based single-producer multi-consumer bounded queue.
// Consumers claim positions via FAA (SCQ-style), requiring 2n physical
// slots for capacity n.
type SPMC[T any] struct {
	_         pad
	head      atomic.Cell[uint64] // consumer index (FAA)
	_         pad
	tail      atomic.Cell[uint64] // single producer writes, consumers read
	_         pad
	threshold atomic.Cell[int64] // livelock prevention for consumers
	_         pad
	buffer    []spmcSlot[T]
	capacity  uint64
	size      uint64
	mask      uint64
}

type spmcSlot[T any] struct {
	cycle atomic.Cell[uint64]
	data  T
	_     padShort
}

// NewSPMC creates a new FAA-based SPMC queue. Capacity rounds up to the
// next power of 2.
func NewSPMC[T any](capacity int) *SPMC[T] {
	if capacity < 2 {
		panic("bq: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	size := n * 2

	q := &SPMC[T]{
		buffer:   make([]spmcSlot[T], size),
		capacity: n,
		size:     size,
		mask:     size - 1,
	}
	q.threshold.Store(3*int64(n)-1, atomic.Relaxed)
	for i := uint64(0); i < size; i++ {
		q.buffer[i].cycle.Store(i/n, atomic.Relaxed)
	}
	return q
}

// Enqueue adds an element (single producer only). Returns ErrWouldBlock if full.
func (q *SPMC[T]) Enqueue(elem *T) error {
	tail := q.tail.Load(atomic.Relaxed)
	head := q.head.Load(atomic.Acquire)
	if tail >= head+q.capacity {
		return ErrWouldBlock
	}

	cycle := tail / q.capacity
	slot := &q.buffer[tail&q.mask]
	slotCycle := slot.cycle.Load(atomic.Acquire)
	if slotCycle != cycle {
		return ErrWouldBlock
	}

	slot.data = *elem
	slot.cycle.Store(cycle+1, atomic.Release)
	q.tail.Store(tail+1, atomic.Relaxed)
	q.threshold.Store(3*int64(q.capacity)-1, atomic.Relaxed)
	return nil
}

// Dequeue removes and returns an element (multiple consumers safe).
func (q *SPMC[T]) Dequeue() (T, error) {
	if q.threshold.Load(atomic.Relaxed) < 0 {
		var zero T
		return zero, ErrWouldBlock
	}

	var bo backoff.LockDefault
	for {
		myHead := q.head.Add(1, atomic.AcqRel)

		slot := &q.buffer[myHead&q.mask]
		expectedCycle := myHead/q.capacity + 1
		slotCycle := slot.cycle.Load(atomic.Acquire)

		if slotCycle == expectedCycle {
			elem := slot.data
			var zero T
			slot.data = zero
			nextEnqCycle := (myHead + q.size) / q.capacity
			slot.cycle.Store(nextEnqCycle, atomic.Release)
			return elem, nil
		}

		if int64(slotCycle) < int64(expectedCycle) {
			nextEnqCycle := (myHead + q.size) / q.capacity
			slot.cycle.CAS(slotCycle, nextEnqCycle, atomic.AcqRel, atomic.Relaxed)

			tail := q.tail.Load(atomic.Relaxed)
			if tail <= myHead+1 {
				q.catchup(tail, myHead+1)
				q.threshold.Add(-1, atomic.AcqRel)
				var zero T
				return zero, ErrWouldBlock
			}
			if q.threshold.Add(-1, atomic.AcqRel)-1 <= 0 {
				var zero T
				return zero, ErrWouldBlock
			}
		}
		bo.Once()
	}
}

func (q *SPMC[T]) catchup(tail, head uint64) {
	for tail < head {
		if q.tail.CAS(tail, head, atomic.Relaxed, atomic.Relaxed) {
			break
		}
		tail = q.tail.Load(atomic.Relaxed)
		head = q.head.Load(atomic.Relaxed)
	}
}

// Cap returns the queue capacity.
func (q *SPMC[T]) Cap() int { return int(q.capacity) }

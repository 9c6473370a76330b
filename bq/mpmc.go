// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
)

// MPMC is an FAA-based multi-producer multi-consumer bounded queue.
//
// Uses Fetch-And-Add to blindly increment position counters, requiring 2n
// physical slots for capacity n. This scales better under high contention
// than CAS-based alternatives.
//
// Cycle-based slot validation provides ABA safety: each slot tracks which
// "cycle" (round) it belongs to via cycle = position / capacity.
type MPMC[T any] struct {
	_         pad
	tail      atomic.Cell[uint64] // producer index (FAA)
	_         pad
	head      atomic.Cell[uint64] // consumer index (FAA)
	_         pad
	threshold atomic.Cell[int64] // livelock prevention for dequeue
	_         pad
	draining  atomic.BoolCell
	_         pad
	buffer    []mpmcSlot[T]
	capacity  uint64
	size      uint64 // 2n physical slots
	mask      uint64
}

type mpmcSlot[T any] struct {
	cycle atomic.Cell[uint64]
	data  T
	_     padShort
}

// NewMPMC creates a new FAA-based MPMC queue. Capacity rounds up to the
// next power of 2; physical slot count is 2n.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 2 {
		panic("bq: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	size := n * 2

	q := &MPMC[T]{
		buffer:   make([]mpmcSlot[T], size),
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

// Drain signals that no more enqueues will occur, letting Dequeue skip the
// threshold check so consumers drain everything left.
func (q *MPMC[T]) Drain() {
	q.draining.Store(true, atomic.Release)
}

// Enqueue adds an element to the queue. Returns ErrWouldBlock if full.
func (q *MPMC[T]) Enqueue(elem *T) error {
	var bo backoff.LockDefault
	for {
		tail := q.tail.Load(atomic.Acquire)
		head := q.head.Load(atomic.Acquire)
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
			q.threshold.Store(3*int64(q.capacity)-1, atomic.Relaxed)
			return nil
		}

		if int64(slotCycle) < int64(expectedCycle) {
			return ErrWouldBlock
		}

		bo.Once()
	}
}

// Dequeue removes and returns an element. Returns (zero, ErrWouldBlock) if empty.
func (q *MPMC[T]) Dequeue() (T, error) {
	if !q.draining.Load(atomic.Acquire) && q.threshold.Load(atomic.Relaxed) < 0 {
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

			tail := q.tail.Load(atomic.Acquire)
			if tail <= myHead+1 {
				q.catchup(tail, myHead+1)
				q.threshold.Add(-1, atomic.AcqRel)
				var zero T
				return zero, ErrWouldBlock
			}
			if q.threshold.Add(-1, atomic.AcqRel)-1 <= 0 && !q.draining.Load(atomic.Acquire) {
				var zero T
				return zero, ErrWouldBlock
			}
		}
		bo.Once()
	}
}

func (q *MPMC[T]) catchup(tail, head uint64) {
	for tail < head {
		if q.tail.CAS(tail, head, atomic.Relaxed, atomic.Relaxed) {
			break
		}
		tail = q.tail.Load(atomic.Relaxed)
		head = q.head.Load(atomic.Relaxed)
	}
}

// Cap returns the queue capacity.
func (q *MPMC[T]) Cap() int { return int(q.capacity) }

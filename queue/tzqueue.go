// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"unsafe"

	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
)

type tzBox[T any] struct {
	value T
}

// TZQueue is the Tsigas-Zhang bounded cyclic array queue (spec.md §4.8): a
// fixed power-of-two-sized array of slots, each an atomic.Tagged128 rather
// than a bare pointer-plus-parity-bit. The source packs a single alternating
// parity bit into each slot's pointer to distinguish free-even from
// free-odd across wraps; Go's GC forbids tagging bits into a live pointer
// (same reason lmsNode carries isDummy as a field instead of a pointer
// bit), so every slot generalizes that one bit to Tagged128's full bumped
// tag — a free slot is {nil, tag}, an occupied one {boxed value, tag}, and
// every claim/release CAS bumps the tag, which is strictly more ABA-safe
// than the single bit it replaces. No SMR is needed: slots are array
// elements, never individually freed.
type TZQueue[T any] struct {
	slots   []atomic.Tagged128
	capMask uint64
	headIdx atomic.Cell[uint64]
	tailIdx atomic.Cell[uint64]
	len     atomic.Cell[int64]
}

func roundUpPow2(n int) int {
	if n < 1 {
		n = 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// NewTZQueue constructs a TZQueue whose capacity is capacity rounded up to
// the next power of two.
func NewTZQueue[T any](capacity int) *TZQueue[T] {
	cap := roundUpPow2(capacity)
	return &TZQueue[T]{slots: make([]atomic.Tagged128, cap), capMask: uint64(cap - 1)}
}

// Cap returns the queue's fixed capacity.
func (q *TZQueue[T]) Cap() int {
	return int(q.capMask) + 1
}

// Enqueue implements spec.md §4.8: claim the slot at tail via CAS from
// free to occupied, retrying against a stale tail and reporting full when
// the ring has no room.
func (q *TZQueue[T]) Enqueue(value T) (bool, error) {
	box := &tzBox[T]{value: value}
	var bo backoff.Exponential
	for {
		tail := q.tailIdx.Load(atomic.Acquire)
		idx := tail & q.capMask
		ptr, tag := q.slots[idx].Load(atomic.Acquire)
		if ptr != nil {
			if q.tailIdx.Load(atomic.Acquire) != tail {
				continue
			}
			head := q.headIdx.Load(atomic.Acquire)
			if tail-head > q.capMask {
				return false, nil
			}
			q.tailIdx.CAS(tail, tail+1, atomic.Release, atomic.Relaxed)
			continue
		}
		if q.slots[idx].CompareAndSwapBumpTag(ptr, tag, unsafe.Pointer(box)) {
			q.tailIdx.CAS(tail, tail+1, atomic.Release, atomic.Relaxed)
			q.len.Add(1, atomic.Relaxed)
			return true, nil
		}
		bo.Once()
	}
}

// Dequeue implements spec.md §4.8's mirror image of Enqueue.
func (q *TZQueue[T]) Dequeue() (value T, ok bool, err error) {
	var bo backoff.Exponential
	for {
		head := q.headIdx.Load(atomic.Acquire)
		idx := head & q.capMask
		ptr, tag := q.slots[idx].Load(atomic.Acquire)
		if ptr == nil {
			if q.headIdx.Load(atomic.Acquire) != head {
				continue
			}
			if head == q.tailIdx.Load(atomic.Acquire) {
				return value, false, nil
			}
			bo.Once()
			continue
		}
		box := (*tzBox[T])(ptr)
		result := box.value
		if q.slots[idx].CompareAndSwapBumpTag(ptr, tag, nil) {
			q.headIdx.CAS(head, head+1, atomic.Release, atomic.Relaxed)
			q.len.Add(-1, atomic.Relaxed)
			return result, true, nil
		}
		bo.Once()
	}
}

// Empty reports whether the queue had no elements at the moment of the
// call.
func (q *TZQueue[T]) Empty() bool {
	head := q.headIdx.Load(atomic.Acquire)
	return head == q.tailIdx.Load(atomic.Acquire)
}

// Len returns an approximate element count.
func (q *TZQueue[T]) Len() int {
	return int(q.len.Load(atomic.Relaxed))
}

// Clear dequeues every element, returning the count removed.
func (q *TZQueue[T]) Clear() int {
	n := 0
	for {
		if _, ok, _ := q.Dequeue(); !ok {
			return n
		}
		n++
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	stdatomic "sync/atomic"
	"unsafe"

	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
	"code.hybscloud.com/lfcore/hp"
)

// defaultSlack is the slack NewMoirQueue uses when given 0 or less.
const defaultSlack = 4

// MoirQueue is the Michael-Scott queue with a slack gate on Enqueue's
// "best-effort swing" CAS: after linking its node, an Enqueue attempts to
// swing tail only once distance (links counted since the counter was last
// reset) reaches slack; the others return without that CAS. Tail still
// lags the true last node by at most one, as in MSQueue, because the next
// Enqueue or Dequeue that finds tail.next set swings tail forward itself.
// Dequeue's own helping step (mandatory, not optional — it is what makes
// progress possible at all) is unchanged from MSQueue.
type MoirQueue[T any] struct {
	gc       *hp.GC
	head     unsafe.Pointer // *msNode[T]
	tail     unsafe.Pointer // *msNode[T]
	len      atomic.Cell[int64]
	distance atomic.Cell[int64]
	slack    int64
}

// NewMoirQueue constructs an empty MoirQueue. A slack of 0 or less uses
// defaultSlack.
func NewMoirQueue[T any](gc *hp.GC, slack int) *MoirQueue[T] {
	if slack <= 0 {
		slack = defaultSlack
	}
	dummy := &msNode[T]{}
	return &MoirQueue[T]{gc: gc, head: unsafe.Pointer(dummy), tail: unsafe.Pointer(dummy), slack: int64(slack)}
}

// Enqueue implements spec.md §4.6.1 with the slack-tail swing gate.
func (q *MoirQueue[T]) Enqueue(value T) (bool, error) {
	tgc := q.gc.AttachCurrent()
	g, err := tgc.AcquireGuard()
	if err != nil {
		return false, err
	}
	defer g.Release()

	newNode := &msNode[T]{value: value}
	var bo backoff.Exponential
	for {
		tailPtr := g.ProtectLink(&q.tail)
		tailNode := (*msNode[T])(tailPtr)
		next := stdatomic.LoadPointer(&tailNode.next)
		if stdatomic.LoadPointer(&q.tail) != tailPtr {
			continue
		}
		if next != nil {
			stdatomic.CompareAndSwapPointer(&q.tail, tailPtr, next)
			continue
		}
		if stdatomic.CompareAndSwapPointer(&tailNode.next, nil, unsafe.Pointer(newNode)) {
			q.len.Add(1, atomic.Relaxed)
			if q.distance.Add(1, atomic.Relaxed)+1 >= q.slack {
				if stdatomic.CompareAndSwapPointer(&q.tail, tailPtr, unsafe.Pointer(newNode)) {
					q.distance.Store(0, atomic.Relaxed)
				}
			}
			return true, nil
		}
		bo.Once()
	}
}

// Dequeue implements spec.md §4.6.2; the head==tail helping CAS is
// mandatory, unaffected by the slack gate (only Enqueue's own swing is
// optional).
func (q *MoirQueue[T]) Dequeue() (value T, ok bool, err error) {
	tgc := q.gc.AttachCurrent()
	gHead, err := tgc.AcquireGuard()
	if err != nil {
		return value, false, err
	}
	defer gHead.Release()
	gTail, err := tgc.AcquireGuard()
	if err != nil {
		return value, false, err
	}
	defer gTail.Release()
	gNext, err := tgc.AcquireGuard()
	if err != nil {
		return value, false, err
	}
	defer gNext.Release()

	var bo backoff.Exponential
	for {
		headPtr := gHead.ProtectLink(&q.head)
		tailPtr := gTail.ProtectLink(&q.tail)
		headNode := (*msNode[T])(headPtr)
		nextPtr := gNext.ProtectLink(&headNode.next)
		if stdatomic.LoadPointer(&q.head) != headPtr {
			continue
		}
		if headPtr == tailPtr {
			if nextPtr == nil {
				return value, false, nil
			}
			stdatomic.CompareAndSwapPointer(&q.tail, tailPtr, nextPtr)
			q.distance.Store(0, atomic.Relaxed)
			continue
		}
		nextNode := (*msNode[T])(nextPtr)
		value = nextNode.value
		if stdatomic.CompareAndSwapPointer(&q.head, headPtr, nextPtr) {
			tgc.Retire(headPtr, msDeleter[T])
			q.len.Add(-1, atomic.Relaxed)
			return value, true, nil
		}
		bo.Once()
	}
}

// Empty reports whether the queue had no elements at the moment of the
// call.
func (q *MoirQueue[T]) Empty() bool {
	return stdatomic.LoadPointer(&q.head) == stdatomic.LoadPointer(&q.tail) &&
		stdatomic.LoadPointer(&(*msNode[T])(stdatomic.LoadPointer(&q.head)).next) == nil
}

// Len returns an approximate element count.
func (q *MoirQueue[T]) Len() int {
	return int(q.len.Load(atomic.Relaxed))
}

// Clear dequeues every element, returning the count removed.
func (q *MoirQueue[T]) Clear() int {
	n := 0
	for {
		if _, ok, _ := q.Dequeue(); !ok {
			return n
		}
		n++
	}
}

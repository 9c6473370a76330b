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

type msNode[T any] struct {
	next  unsafe.Pointer // *msNode[T]
	value T
}

// MSQueue is the classical Michael-Scott unbounded FIFO queue (spec.md
// §4.6): a permanent dummy sentinel at head, tail allowed to lag one step
// behind the true last node and swung into place by whichever goroutine
// next notices. Every node is hazard-pointer protected; retired nodes are
// handed to gc for eventual reclamation.
type MSQueue[T any] struct {
	gc   *hp.GC
	head unsafe.Pointer // *msNode[T]
	tail unsafe.Pointer // *msNode[T]
	len  atomic.Cell[int64]
}

// NewMSQueue constructs an empty MSQueue backed by gc. gc must outlive the
// queue.
func NewMSQueue[T any](gc *hp.GC) *MSQueue[T] {
	dummy := &msNode[T]{}
	return &MSQueue[T]{gc: gc, head: unsafe.Pointer(dummy), tail: unsafe.Pointer(dummy)}
}

func msDeleter[T any](p unsafe.Pointer) {
	n := (*msNode[T])(p)
	n.next = nil
}

// Enqueue implements spec.md §4.6.1.
func (q *MSQueue[T]) Enqueue(value T) (bool, error) {
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
			stdatomic.CompareAndSwapPointer(&q.tail, tailPtr, unsafe.Pointer(newNode))
			q.len.Add(1, atomic.Relaxed)
			return true, nil
		}
		bo.Once()
	}
}

// Dequeue implements spec.md §4.6.2.
func (q *MSQueue[T]) Dequeue() (value T, ok bool, err error) {
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
func (q *MSQueue[T]) Empty() bool {
	return stdatomic.LoadPointer(&q.head) == stdatomic.LoadPointer(&q.tail) &&
		stdatomic.LoadPointer(&(*msNode[T])(stdatomic.LoadPointer(&q.head)).next) == nil
}

// Len returns an approximate element count.
func (q *MSQueue[T]) Len() int {
	return int(q.len.Load(atomic.Relaxed))
}

// Clear dequeues every element, returning the count removed.
func (q *MSQueue[T]) Clear() int {
	n := 0
	for {
		if _, ok, _ := q.Dequeue(); !ok {
			return n
		}
		n++
	}
}

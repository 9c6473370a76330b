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

// lmsNode is one LMSQueue node. spec.md §4.7 packs the dummy/regular
// distinction into the low bit of next at the pointer level; Go's GC
// requires unsafe.Pointer values to always be valid object addresses, so
// tagging a bit into the address itself is unsound here (this is the same
// reason atomic.Tagged128 boxes {ptr,tag} rather than packing a hardware
// double-word) — isDummy is carried as an explicit field instead, same
// information, memory-safe representation.
type lmsNode[T any] struct {
	next    unsafe.Pointer // *lmsNode[T], authoritative forward link
	prev    unsafe.Pointer // *lmsNode[T], eventually consistent, repaired by fixList
	value   T
	isDummy bool
}

// LMSQueue is the Ladan-Mozes-Shavit optimistic doubly-linked queue
// (spec.md §4.7). Enqueue swings tail first and links next second, so a
// concurrent Dequeue can observe a tail one step ahead of a not-yet-set
// next; fixList repairs prev chains by walking forward from head,
// hazard-pointer protecting the two nodes it is currently comparing.
type LMSQueue[T any] struct {
	gc   *hp.GC
	head unsafe.Pointer // *lmsNode[T], dummy
	tail unsafe.Pointer // *lmsNode[T]
	len  atomic.Cell[int64]
}

// NewLMSQueue constructs an empty LMSQueue backed by gc.
func NewLMSQueue[T any](gc *hp.GC) *LMSQueue[T] {
	dummy := &lmsNode[T]{isDummy: true}
	return &LMSQueue[T]{gc: gc, head: unsafe.Pointer(dummy), tail: unsafe.Pointer(dummy)}
}

func lmsDeleter[T any](p unsafe.Pointer) {
	n := (*lmsNode[T])(p)
	n.next, n.prev = nil, nil
}

// Enqueue implements spec.md §4.7: prev is set optimistically before the
// tail swing, next is linked only after the swing commits.
func (q *LMSQueue[T]) Enqueue(value T) (bool, error) {
	tgc := q.gc.AttachCurrent()
	g, err := tgc.AcquireGuard()
	if err != nil {
		return false, err
	}
	defer g.Release()

	newNode := &lmsNode[T]{value: value}
	var bo backoff.Exponential
	for {
		tailPtr := g.ProtectLink(&q.tail)
		newNode.prev = tailPtr
		if stdatomic.CompareAndSwapPointer(&q.tail, tailPtr, unsafe.Pointer(newNode)) {
			tailNode := (*lmsNode[T])(tailPtr)
			stdatomic.StorePointer(&tailNode.next, unsafe.Pointer(newNode))
			q.len.Add(1, atomic.Relaxed)
			return true, nil
		}
		bo.Once()
	}
}

// Dequeue implements spec.md §4.7. A head whose next is not yet linked
// (a concurrent Enqueue swung tail but has not yet set next) triggers
// fixList before retrying.
func (q *LMSQueue[T]) Dequeue() (value T, ok bool, err error) {
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

	var bo backoff.Exponential
	for {
		headPtr := gHead.ProtectLink(&q.head)
		tailPtr := gTail.ProtectLink(&q.tail)
		if headPtr == tailPtr {
			return value, false, nil
		}
		headNode := (*lmsNode[T])(headPtr)
		next := stdatomic.LoadPointer(&headNode.next)
		if next == nil {
			q.fixList(tgc)
			bo.Once()
			continue
		}
		nextNode := (*lmsNode[T])(next)
		result := nextNode.value
		if stdatomic.CompareAndSwapPointer(&q.head, headPtr, next) {
			tgc.Retire(headPtr, lmsDeleter[T])
			q.len.Add(-1, atomic.Relaxed)
			return result, true, nil
		}
		bo.Once()
	}
}

// fixList walks forward from head repairing prev links that have not
// caught up with next, hazard-pointer protecting the current and next
// node (plus Dequeue's own head/tail guards, four guards in total).
func (q *LMSQueue[T]) fixList(tgc *hp.ThreadGC) {
	gCur, err := tgc.AcquireGuard()
	if err != nil {
		return
	}
	defer gCur.Release()
	gNext, err := tgc.AcquireGuard()
	if err != nil {
		return
	}
	defer gNext.Release()

	cur := gCur.ProtectLink(&q.head)
	tail := stdatomic.LoadPointer(&q.tail)
	for cur != tail {
		curNode := (*lmsNode[T])(cur)
		next := gNext.ProtectLink(&curNode.next)
		if next == nil {
			return
		}
		nextNode := (*lmsNode[T])(next)
		if prev := stdatomic.LoadPointer(&nextNode.prev); prev != cur {
			stdatomic.CompareAndSwapPointer(&nextNode.prev, prev, cur)
		}
		cur = next
		gCur.Set(cur)
	}
}

// Empty reports whether the queue had no elements at the moment of the
// call.
func (q *LMSQueue[T]) Empty() bool {
	return stdatomic.LoadPointer(&q.head) == stdatomic.LoadPointer(&q.tail)
}

// Len returns an approximate element count.
func (q *LMSQueue[T]) Len() int {
	return int(q.len.Load(atomic.Relaxed))
}

// Clear dequeues every element, returning the count removed.
func (q *LMSQueue[T]) Clear() int {
	n := 0
	for {
		if _, ok, _ := q.Dequeue(); !ok {
			return n
		}
		n++
	}
}

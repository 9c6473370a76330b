// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"unsafe"

	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
	"code.hybscloud.com/lfcore/freelist"
)

type tmsPayload[T any] struct {
	qnext atomic.Tagged128
	value T
}

// TaggedMSQueue is spec.md §4.6's tagged variant: every link (head, tail,
// and each node's next) is an atomic.Tagged128 rather than a bare pointer,
// and retired nodes recirculate through a freelist.List instead of being
// handed to an SMR scheme. The {ptr,tag} CAS closes the ABA window on its
// own, which is what makes hazard-pointer protection unnecessary here —
// any reader that raced a concurrent reuse always finds its captured
// head/tail pair stale on re-validation and retries.
type TaggedMSQueue[T any] struct {
	head atomic.Tagged128 // ptr -> *freelist.Node[tmsPayload[T]]
	tail atomic.Tagged128
	fl   freelist.List[tmsPayload[T]]
	len  atomic.Cell[int64]
}

// NewTaggedMSQueue constructs an empty TaggedMSQueue.
func NewTaggedMSQueue[T any]() *TaggedMSQueue[T] {
	dummy := &freelist.Node[tmsPayload[T]]{}
	q := &TaggedMSQueue[T]{}
	q.head.Store(unsafe.Pointer(dummy), 0, atomic.Relaxed)
	q.tail.Store(unsafe.Pointer(dummy), 0, atomic.Relaxed)
	return q
}

func (q *TaggedMSQueue[T]) allocNode(value T) *freelist.Node[tmsPayload[T]] {
	n := q.fl.Pop()
	if n == nil {
		n = &freelist.Node[tmsPayload[T]]{}
	}
	n.Value.qnext.Store(nil, 0, atomic.Relaxed)
	n.Value.value = value
	return n
}

// Enqueue implements spec.md §4.6.1 over tagged links.
func (q *TaggedMSQueue[T]) Enqueue(value T) (bool, error) {
	newNode := q.allocNode(value)
	var bo backoff.Exponential
	for {
		tailPtr, tailTag := q.tail.Load(atomic.Acquire)
		tailNode := (*freelist.Node[tmsPayload[T]])(tailPtr)
		nextPtr, nextTag := tailNode.Value.qnext.Load(atomic.Acquire)
		curTailPtr, curTailTag := q.tail.Load(atomic.Acquire)
		if curTailPtr != tailPtr || curTailTag != tailTag {
			continue
		}
		if nextPtr != nil {
			q.tail.CompareAndSwapBumpTag(tailPtr, tailTag, nextPtr)
			continue
		}
		if tailNode.Value.qnext.CompareAndSwap(nextPtr, nextTag, unsafe.Pointer(newNode), nextTag+1, atomic.Release, atomic.Relaxed) {
			q.tail.CompareAndSwapBumpTag(tailPtr, tailTag, unsafe.Pointer(newNode))
			q.len.Add(1, atomic.Relaxed)
			return true, nil
		}
		bo.Once()
	}
}

// Dequeue implements spec.md §4.6.2 over tagged links. The old dummy node
// is pushed back onto the free-list rather than retired through SMR.
func (q *TaggedMSQueue[T]) Dequeue() (value T, ok bool, err error) {
	var bo backoff.Exponential
	for {
		headPtr, headTag := q.head.Load(atomic.Acquire)
		tailPtr, tailTag := q.tail.Load(atomic.Acquire)
		headNode := (*freelist.Node[tmsPayload[T]])(headPtr)
		nextPtr, nextTag := headNode.Value.qnext.Load(atomic.Acquire)
		curHeadPtr, curHeadTag := q.head.Load(atomic.Acquire)
		if curHeadPtr != headPtr || curHeadTag != headTag {
			continue
		}
		if headPtr == tailPtr {
			if nextPtr == nil {
				return value, false, nil
			}
			q.tail.CompareAndSwapBumpTag(tailPtr, tailTag, nextPtr)
			continue
		}
		nextNode := (*freelist.Node[tmsPayload[T]])(nextPtr)
		result := nextNode.Value.value
		_ = nextTag
		if q.head.CompareAndSwapBumpTag(headPtr, headTag, nextPtr) {
			q.fl.Push(headNode)
			q.len.Add(-1, atomic.Relaxed)
			return result, true, nil
		}
		bo.Once()
	}
}

// Empty reports whether the queue had no elements at the moment of the
// call.
func (q *TaggedMSQueue[T]) Empty() bool {
	headPtr, _ := q.head.Load(atomic.Acquire)
	tailPtr, _ := q.tail.Load(atomic.Acquire)
	if headPtr != tailPtr {
		return false
	}
	headNode := (*freelist.Node[tmsPayload[T]])(headPtr)
	nextPtr, _ := headNode.Value.qnext.Load(atomic.Acquire)
	return nextPtr == nil
}

// Len returns an approximate element count.
func (q *TaggedMSQueue[T]) Len() int {
	return int(q.len.Load(atomic.Relaxed))
}

// Clear dequeues every element, returning the count removed.
func (q *TaggedMSQueue[T]) Clear() int {
	n := 0
	for {
		if _, ok, _ := q.Dequeue(); !ok {
			return n
		}
		n++
	}
}

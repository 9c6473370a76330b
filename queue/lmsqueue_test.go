// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"testing"

	"code.hybscloud.com/lfcore/hp"
)

func TestLMSQueueFIFOOrdering(t *testing.T) {
	gc := hp.New()
	q := NewLMSQueue[int](gc)
	for i := 0; i < 40; i++ {
		if ok, err := q.Enqueue(i); !ok || err != nil {
			t.Fatalf("Enqueue(%d): ok=%v err=%v", i, ok, err)
		}
	}
	for i := 0; i < 40; i++ {
		v, ok, err := q.Dequeue()
		if !ok || err != nil || v != i {
			t.Fatalf("Dequeue at i=%d: got (%d,%v,%v)", i, v, ok, err)
		}
	}
	if !q.Empty() {
		t.Fatalf("queue should be Empty after draining everything enqueued")
	}
}

func TestLMSQueueEmptyDequeue(t *testing.T) {
	gc := hp.New()
	q := NewLMSQueue[int](gc)
	if _, ok, err := q.Dequeue(); ok || err != nil {
		t.Fatalf("Dequeue on empty queue: ok=%v err=%v", ok, err)
	}
}

func TestLMSQueueFixListRepairsPrevChain(t *testing.T) {
	gc := hp.New()
	q := NewLMSQueue[int](gc)
	for i := 0; i < 5; i++ {
		if ok, _ := q.Enqueue(i); !ok {
			t.Fatalf("Enqueue(%d) failed", i)
		}
	}
	// break every back-link so fixList has a prev chain to repair
	for cur := (*lmsNode[int])(q.head); cur.next != nil; {
		next := (*lmsNode[int])(cur.next)
		next.prev = nil
		cur = next
	}
	q.fixList(gc.AttachCurrent())

	tail := (*lmsNode[int])(q.tail)
	n := 0
	for cur := tail; cur != nil && !cur.isDummy; {
		prev := (*lmsNode[int])(cur.prev)
		if prev == nil {
			t.Fatalf("prev chain broken at node with value %v", cur.value)
		}
		n++
		cur = prev
	}
	if n != 5 {
		t.Fatalf("walked %d nodes via prev, want 5", n)
	}
}

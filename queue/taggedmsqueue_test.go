// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "testing"

func TestTaggedMSQueueFIFOOrdering(t *testing.T) {
	q := NewTaggedMSQueue[int]()
	for i := 0; i < 50; i++ {
		if ok, err := q.Enqueue(i); !ok || err != nil {
			t.Fatalf("Enqueue(%d): ok=%v err=%v", i, ok, err)
		}
	}
	for i := 0; i < 50; i++ {
		v, ok, err := q.Dequeue()
		if !ok || err != nil || v != i {
			t.Fatalf("Dequeue at i=%d: got (%d,%v,%v)", i, v, ok, err)
		}
	}
	if !q.Empty() {
		t.Fatalf("queue should be Empty after draining everything enqueued")
	}
}

func TestTaggedMSQueueNodesRecycleThroughFreelist(t *testing.T) {
	q := NewTaggedMSQueue[int]()
	for round := 0; round < 5; round++ {
		for i := 0; i < 10; i++ {
			if ok, _ := q.Enqueue(i); !ok {
				t.Fatalf("round %d: Enqueue(%d) failed", round, i)
			}
		}
		for i := 0; i < 10; i++ {
			if _, ok, _ := q.Dequeue(); !ok {
				t.Fatalf("round %d: Dequeue at i=%d unexpectedly empty", round, i)
			}
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after equal enqueues and dequeues", q.Len())
	}
	// every round's 10 dequeues push 10 old dummies onto the free-list and
	// the next round's 10 enqueues pop them back, so 10 remain at the end
	recycled := 0
	for q.fl.Pop() != nil {
		recycled++
	}
	if recycled != 10 {
		t.Fatalf("free-list holds %d nodes, want 10 recycled nodes", recycled)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "testing"

func TestTZQueueRoundsCapacityToPowerOfTwo(t *testing.T) {
	q := NewTZQueue[int](3)
	if q.Cap() != 4 {
		t.Fatalf("Cap() = %d, want 4 (3 rounded up to a power of two)", q.Cap())
	}
}

func TestTZQueueFullAndDrainNoLeak(t *testing.T) {
	q := NewTZQueue[int](4)
	for i := 0; i < 4; i++ {
		if ok, err := q.Enqueue(i); !ok || err != nil {
			t.Fatalf("Enqueue(%d): ok=%v err=%v", i, ok, err)
		}
	}
	if ok, err := q.Enqueue(99); ok || err != nil {
		t.Fatalf("Enqueue on a full queue: ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	for i := 0; i < 4; i++ {
		v, ok, err := q.Dequeue()
		if !ok || err != nil {
			t.Fatalf("Dequeue at i=%d: ok=%v err=%v", i, ok, err)
		}
		if v != i {
			t.Fatalf("Dequeue order broken: got %d, want %d", v, i)
		}
	}
	if _, ok, _ := q.Dequeue(); ok {
		t.Fatalf("queue should be empty after draining exactly what was enqueued")
	}

	// the ring must be fully reusable after a drain: no slot leaks as
	// permanently occupied.
	for i := 0; i < 4; i++ {
		if ok, err := q.Enqueue(i); !ok || err != nil {
			t.Fatalf("re-Enqueue(%d) after drain: ok=%v err=%v", i, ok, err)
		}
	}
	if q.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 after refilling a drained queue", q.Len())
	}
}

func TestTZQueueWraparound(t *testing.T) {
	q := NewTZQueue[int](4)
	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			if ok, _ := q.Enqueue(round*10 + i); !ok {
				t.Fatalf("round %d: Enqueue(%d) unexpectedly failed", round, i)
			}
		}
		for i := 0; i < 4; i++ {
			v, ok, _ := q.Dequeue()
			want := round*10 + i
			if !ok || v != want {
				t.Fatalf("round %d: got (%d,%v), want (%d,true)", round, v, ok, want)
			}
		}
	}
}

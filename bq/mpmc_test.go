// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import "testing"

func TestMPMCCapacityRoundsUpAndFull(t *testing.T) {
	q := NewMPMC[int](3)
	if q.Cap() != 4 {
		t.Fatalf("Cap() = %d, want 4 (3 rounded up to a power of two)", q.Cap())
	}
	for i := 0; i < 4; i++ {
		if err := q.Enqueue(&i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	overflow := 99
	if err := q.Enqueue(&overflow); err != ErrWouldBlock {
		t.Fatalf("Enqueue on a full queue: err=%v, want ErrWouldBlock", err)
	}
}

func TestMPMCDequeueEmptyWouldBlock(t *testing.T) {
	q := NewMPMC[int](4)
	if _, err := q.Dequeue(); err != ErrWouldBlock {
		t.Fatalf("Dequeue on empty queue: err=%v, want ErrWouldBlock", err)
	}
}

func TestMPMCFIFOAcrossWraparound(t *testing.T) {
	q := NewMPMC[int](4)
	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			v := round*10 + i
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d: Enqueue(%d): %v", round, v, err)
			}
		}
		for i := 0; i < 4; i++ {
			v, err := q.Dequeue()
			want := round*10 + i
			if err != nil || v != want {
				t.Fatalf("round %d: Dequeue got (%d,%v), want (%d,nil)", round, v, err, want)
			}
		}
	}
}

func TestMPMCDrainLetsConsumersIgnoreThreshold(t *testing.T) {
	q := NewMPMC[int](4)
	for i := 0; i < 4; i++ {
		if err := q.Enqueue(&i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	q.Drain()
	n := 0
	for {
		if _, err := q.Dequeue(); err != nil {
			break
		}
		n++
	}
	if n != 4 {
		t.Fatalf("drained %d elements after Drain, want 4", n)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync"
	"testing"

	"code.hybscloud.com/lfcore/hp"
)

func TestMSQueueFIFOOrdering(t *testing.T) {
	gc := hp.New()
	q := NewMSQueue[int](gc)
	for i := 0; i < 100; i++ {
		if ok, err := q.Enqueue(i); !ok || err != nil {
			t.Fatalf("Enqueue(%d): ok=%v err=%v", i, ok, err)
		}
	}
	for i := 0; i < 100; i++ {
		v, ok, err := q.Dequeue()
		if !ok || err != nil {
			t.Fatalf("Dequeue at i=%d: ok=%v err=%v", i, ok, err)
		}
		if v != i {
			t.Fatalf("Dequeue order broken: got %d, want %d", v, i)
		}
	}
}

func TestMSQueueEmptyDequeue(t *testing.T) {
	gc := hp.New()
	q := NewMSQueue[int](gc)
	if !q.Empty() {
		t.Fatalf("new queue should be Empty")
	}
	if _, ok, err := q.Dequeue(); ok || err != nil {
		t.Fatalf("Dequeue on empty queue: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestMSQueueConcurrentProducersThenDrain(t *testing.T) {
	gc := hp.New()
	q := NewMSQueue[int](gc)
	const producers = 4
	const perProducer = 2000

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if ok, err := q.Enqueue(i); !ok || err != nil {
					t.Errorf("Enqueue: ok=%v err=%v", ok, err)
				}
			}
		}()
	}
	wg.Wait()

	seen := 0
	for {
		_, ok, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if !ok {
			break
		}
		seen++
	}
	if seen != producers*perProducer {
		t.Fatalf("drained %d values, want %d", seen, producers*perProducer)
	}
}

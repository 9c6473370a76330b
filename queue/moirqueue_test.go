// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"testing"

	"code.hybscloud.com/lfcore/hp"
)

func TestMoirQueueFIFOOrdering(t *testing.T) {
	gc := hp.New()
	q := NewMoirQueue[int](gc, 2)
	for i := 0; i < 30; i++ {
		if ok, err := q.Enqueue(i); !ok || err != nil {
			t.Fatalf("Enqueue(%d): ok=%v err=%v", i, ok, err)
		}
	}
	for i := 0; i < 30; i++ {
		v, ok, err := q.Dequeue()
		if !ok || err != nil || v != i {
			t.Fatalf("Dequeue at i=%d: got (%d,%v,%v)", i, v, ok, err)
		}
	}
}

func TestMoirQueueDefaultSlack(t *testing.T) {
	gc := hp.New()
	q := NewMoirQueue[int](gc, 0)
	if q.slack != defaultSlack {
		t.Fatalf("slack = %d, want defaultSlack (%d) when constructed with 0", q.slack, defaultSlack)
	}
}

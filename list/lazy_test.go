// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package list

import "testing"

func TestLazyListInsertFindErase(t *testing.T) {
	l := NewLazyList[int, string]()

	if ok, err := l.Insert(5, "five"); !ok || err != nil {
		t.Fatalf("Insert(5): ok=%v err=%v", ok, err)
	}
	if ok, err := l.Insert(5, "again"); ok || err != nil {
		t.Fatalf("Insert duplicate key: ok=%v err=%v, want false", ok, err)
	}
	if ok, err := l.Insert(1, "one"); !ok || err != nil {
		t.Fatalf("Insert(1): ok=%v err=%v", ok, err)
	}
	if ok, err := l.Insert(10, "ten"); !ok || err != nil {
		t.Fatalf("Insert(10): ok=%v err=%v", ok, err)
	}

	if ok, err := l.Find(5); !ok || err != nil {
		t.Fatalf("Find(5): ok=%v err=%v", ok, err)
	}
	if ok, err := l.Erase(5); !ok || err != nil {
		t.Fatalf("Erase(5): ok=%v err=%v", ok, err)
	}
	if ok, err := l.Find(5); ok || err != nil {
		t.Fatalf("Find(5) after Erase: ok=%v err=%v, want false", ok, err)
	}

	var order []int
	l.Iterate(func(key int, _ string) bool {
		order = append(order, key)
		return true
	})
	if len(order) != 2 || order[0] != 1 || order[1] != 10 {
		t.Fatalf("Iterate order = %v, want [1 10]", order)
	}
	if got, want := l.Size(), uint64(2); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestLazyListEmptyAndClear(t *testing.T) {
	l := NewLazyList[int, int]()
	if !l.Empty() {
		t.Fatalf("new list should be Empty")
	}
	for i := 0; i < 10; i++ {
		if ok, _ := l.Insert(i, i*i); !ok {
			t.Fatalf("Insert(%d) failed", i)
		}
	}
	if l.Empty() {
		t.Fatalf("list with elements should not be Empty")
	}
	if n := l.Clear(); n != 10 {
		t.Fatalf("Clear() removed %d, want 10", n)
	}
	if !l.Empty() {
		t.Fatalf("list should be Empty after Clear")
	}
}

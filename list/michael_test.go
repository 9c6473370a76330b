// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package list

import (
	"testing"

	"code.hybscloud.com/lfcore/hp"
)

func TestMichaelListInsertFindErase(t *testing.T) {
	gc := hp.New()
	l := NewMichaelList[int, string](gc)

	if ok, err := l.Insert(5, "five"); !ok || err != nil {
		t.Fatalf("Insert(5): ok=%v err=%v", ok, err)
	}
	if ok, err := l.Insert(5, "five-again"); ok || err != nil {
		t.Fatalf("Insert duplicate key: ok=%v err=%v, want ok=false", ok, err)
	}
	if ok, err := l.Insert(1, "one"); !ok || err != nil {
		t.Fatalf("Insert(1): ok=%v err=%v", ok, err)
	}
	if ok, err := l.Insert(10, "ten"); !ok || err != nil {
		t.Fatalf("Insert(10): ok=%v err=%v", ok, err)
	}

	var got string
	if ok, err := l.FindCopy(5, func(v *string) { got = *v }); !ok || err != nil || got != "five" {
		t.Fatalf("FindCopy(5): ok=%v err=%v got=%q", ok, err, got)
	}
	if ok, err := l.Find(99); ok || err != nil {
		t.Fatalf("Find(99) on absent key: ok=%v err=%v", ok, err)
	}

	var order []int
	l.Iterate(func(key int, _ string) bool {
		order = append(order, key)
		return true
	})
	want := []int{1, 5, 10}
	if len(order) != len(want) {
		t.Fatalf("Iterate order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Iterate order = %v, want %v", order, want)
		}
	}

	if ok, err := l.Erase(5); !ok || err != nil {
		t.Fatalf("Erase(5): ok=%v err=%v", ok, err)
	}
	if ok, err := l.Erase(5); ok || err != nil {
		t.Fatalf("Erase(5) twice: ok=%v err=%v, want ok=false", ok, err)
	}
	if ok, err := l.Find(5); ok || err != nil {
		t.Fatalf("Find(5) after Erase: ok=%v err=%v, want ok=false", ok, err)
	}
	if got, want := l.Size(), uint64(2); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestMichaelListEnsureInsertsOrUpdates(t *testing.T) {
	gc := hp.New()
	l := NewMichaelList[int, int](gc)

	found, inserted, err := l.Ensure(1, 100, func(v *int) { *v += 1 })
	if err != nil || found || !inserted {
		t.Fatalf("Ensure on absent key: found=%v inserted=%v err=%v, want false,true", found, inserted, err)
	}
	found, inserted, err = l.Ensure(1, 999, func(v *int) { *v += 1 })
	if err != nil || !found || inserted {
		t.Fatalf("Ensure on present key: found=%v inserted=%v err=%v, want true,false", found, inserted, err)
	}
	var got int
	l.FindCopy(1, func(v *int) { got = *v })
	if got != 101 {
		t.Fatalf("value after Ensure update = %d, want 101", got)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hp

import (
	"sync"
	"testing"
	"unsafe"
)

func TestAttachDetachReusesRecord(t *testing.T) {
	gc := New(WithHazardsPerThread(2))
	a := gc.Attach()
	a.Detach()
	b := gc.Attach()
	if a == b {
		t.Fatalf("Attach returned the same *ThreadGC handle twice")
	}
	st := gc.Stats()
	if st.RecordsAllocated != 1 {
		t.Fatalf("RecordsAllocated = %d, want 1 (record should be reused, not re-allocated)", st.RecordsAllocated)
	}
}

func TestAcquireGuardExhaustion(t *testing.T) {
	gc := New(WithHazardsPerThread(1))
	tgc := gc.Attach()
	defer tgc.Detach()

	if _, err := tgc.AcquireGuard(); err != nil {
		t.Fatalf("first AcquireGuard: %v", err)
	}
	if _, err := tgc.AcquireGuard(); err == nil {
		t.Fatalf("second AcquireGuard on a single-slot thread should fail")
	}
}

func TestScanFreesUnguardedRetired(t *testing.T) {
	gc := New(WithHazardsPerThread(4), WithMaxRetiredPerThread(1000))
	tgc := gc.Attach()
	defer tgc.Detach()

	const n = 100
	freed := 0
	ptrs := make([]int, n)
	for i := range ptrs {
		p := unsafe.Pointer(&ptrs[i])
		tgc.Retire(p, func(unsafe.Pointer) { freed++ })
	}
	tgc.Scan()
	if freed != n {
		t.Fatalf("freed = %d, want %d (scenario 7: scan with no hazards set frees everything)", freed, n)
	}
}

func TestScanKeepsHazardedPointer(t *testing.T) {
	gc := New(WithHazardsPerThread(4))
	owner := gc.Attach()
	defer owner.Detach()

	var x int
	p := unsafe.Pointer(&x)

	reader := gc.Attach()
	defer reader.Detach()
	g, err := reader.AcquireGuard()
	if err != nil {
		t.Fatal(err)
	}
	g.Set(p)

	freed := false
	owner.Retire(p, func(unsafe.Pointer) { freed = true })
	owner.Scan()
	if freed {
		t.Fatalf("Scan freed a pointer that a live guard still names")
	}

	g.Release()
	owner.Scan()
	if !freed {
		t.Fatalf("Scan did not free a pointer once its guard was released")
	}
}

func TestHelpScanReclaimsDetachedRecord(t *testing.T) {
	gc := New(WithHazardsPerThread(4), WithMaxRetiredPerThread(1000))

	victim := gc.Attach()
	// attached before victim detaches, so helper owns a record of its own
	// and the victim's entry can only reach it through HelpScan
	helper := gc.Attach()
	defer helper.Detach()

	var x int
	freed := false
	victim.Retire(unsafe.Pointer(&x), func(unsafe.Pointer) { freed = true })
	victim.Detach() // retired entry stays on the now-free record

	helper.HelpScan()
	helper.Scan()

	if !freed {
		t.Fatalf("HelpScan did not drain a detached record's leftover retired entries")
	}
}

func TestAttachCurrentMemoizesPerGoroutine(t *testing.T) {
	gc := New()
	a := gc.AttachCurrent()
	b := gc.AttachCurrent()
	if a != b {
		t.Fatalf("AttachCurrent returned different handles within the same goroutine")
	}

	var wg sync.WaitGroup
	results := make(chan *ThreadGC, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results <- gc.AttachCurrent()
	}()
	wg.Wait()
	other := <-results
	if other == a {
		t.Fatalf("AttachCurrent returned the same handle across different goroutines")
	}
}

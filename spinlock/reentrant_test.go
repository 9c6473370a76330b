// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spinlock

import (
	"sync"
	"testing"

	"code.hybscloud.com/lfcore/atomic"
)

func TestReentrantMutexNestedLock(t *testing.T) {
	var m ReentrantMutex
	m.Lock()
	if !m.TryLock() {
		t.Fatalf("nested TryLock from the same goroutine should succeed")
	}
	m.Lock()
	// depth is now 3; unwind and confirm the lock is still held until the
	// outermost Unlock.
	m.Unlock()
	m.Unlock()
	if m.locked.Load(atomic.Acquire) != true {
		t.Fatalf("lock should still be held after only 2 of 3 Unlocks")
	}
	m.Unlock()
	if m.locked.Load(atomic.Acquire) != false {
		t.Fatalf("lock should be free after the matching number of Unlocks")
	}
}

func TestReentrantMutexExcludesOtherGoroutines(t *testing.T) {
	var m ReentrantMutex
	m.Lock()
	defer m.Unlock()

	done := make(chan bool, 1)
	go func() {
		done <- m.TryLock()
	}()
	if acquired := <-done; acquired {
		t.Fatalf("a different goroutine's TryLock should not succeed while the owner holds the lock")
	}
}

func TestReentrantMutexMutualExclusionAcrossGoroutines(t *testing.T) {
	var m ReentrantMutex
	var counter int
	var wg sync.WaitGroup
	const goroutines = 8
	const incsPerGoroutine = 2000
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < incsPerGoroutine; j++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()
	if counter != goroutines*incsPerGoroutine {
		t.Fatalf("counter = %d, want %d", counter, goroutines*incsPerGoroutine)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spinlock

import (
	"sync"
	"testing"
)

func TestMutexTryLockExclusive(t *testing.T) {
	var m Mutex
	if !m.TryLock() {
		t.Fatalf("first TryLock should succeed on an unlocked Mutex")
	}
	if m.TryLock() {
		t.Fatalf("second TryLock should fail while already locked")
	}
	m.Unlock()
	if !m.TryLock() {
		t.Fatalf("TryLock should succeed again after Unlock")
	}
}

func TestMutexMutualExclusion(t *testing.T) {
	var m Mutex
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
		t.Fatalf("counter = %d, want %d (Lock/Unlock failed to serialize increments)", counter, goroutines*incsPerGoroutine)
	}
}

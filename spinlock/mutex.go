// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spinlock

import (
	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
)

// Mutex is a TATAS spin-lock: a single atomic flag. TryLock is an
// acquire-ordered CAS from unlocked to locked. Lock spins while the flag
// reads non-zero (the "test, test-and-set" half that avoids hammering the
// cache line with CAS traffic under contention) before retrying TryLock.
// Unlock is a release store back to unlocked.
//
// The zero value is an unlocked Mutex.
type Mutex struct {
	locked atomic.BoolCell
	dbg    debugState
}

// TryLock attempts to acquire the lock without blocking.
func (m *Mutex) TryLock() bool {
	m.dbg.checkReentrant()
	if m.locked.CAS(false, true) {
		m.dbg.acquired()
		return true
	}
	return false
}

// Lock blocks, busy-spinning with backoff, until the lock is acquired.
func (m *Mutex) Lock() {
	m.dbg.checkReentrant()
	var bo backoff.LockDefault
	for {
		for m.locked.Load(atomic.Relaxed) {
			bo.Once()
		}
		if m.locked.CAS(false, true) {
			m.dbg.acquired()
			return
		}
		bo.Once()
	}
}

// Unlock releases the lock. Unlocking an already-unlocked Mutex is
// undefined, as with sync.Mutex.
func (m *Mutex) Unlock() {
	m.dbg.released()
	m.locked.Store(false, atomic.Release)
}

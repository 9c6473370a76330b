// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spinlock

import (
	"strconv"

	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/backoff"
	"code.hybscloud.com/lfcore/internal/gid"
)

// currentID parses internal/gid's string id into a uint64 so it can live
// in an atomic.Cell; a parse failure (never observed in practice) maps to
// 0, which no real goroutine id takes since the runtime starts counting
// at 1.
func currentID() uint64 {
	n, err := strconv.ParseUint(gid.Current(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ReentrantMutex is a TATAS spin-lock that the holding goroutine may lock
// again without blocking on itself: depth counts nested acquisitions and
// the lock is released to other goroutines only when depth returns to
// zero. Identifying the holder relies on internal/gid's best-effort
// goroutine id, so a ReentrantMutex must not be locked on one goroutine
// and unlocked on another.
//
// The zero value is an unlocked ReentrantMutex.
type ReentrantMutex struct {
	locked atomic.BoolCell
	owner  atomic.Cell[uint64]
	depth  int
}

// TryLock attempts to acquire or re-acquire the lock without blocking.
func (m *ReentrantMutex) TryLock() bool {
	id := currentID()
	if m.locked.Load(atomic.Acquire) && m.owner.Load(atomic.Acquire) == id {
		m.depth++
		return true
	}
	if !m.locked.CAS(false, true) {
		return false
	}
	m.owner.Store(id, atomic.Release)
	m.depth = 1
	return true
}

// Lock blocks, busy-spinning with backoff, until the lock is acquired or
// re-acquired by the calling goroutine.
func (m *ReentrantMutex) Lock() {
	id := currentID()
	var bo backoff.LockDefault
	for {
		if m.locked.Load(atomic.Acquire) && m.owner.Load(atomic.Acquire) == id {
			m.depth++
			return
		}
		for m.locked.Load(atomic.Relaxed) {
			bo.Once()
		}
		if m.locked.CAS(false, true) {
			m.owner.Store(id, atomic.Release)
			m.depth = 1
			return
		}
		bo.Once()
	}
}

// Unlock releases one level of nesting. Once depth reaches zero the lock
// becomes available to other goroutines. Unlocking from a goroutine that
// does not hold the lock is undefined.
func (m *ReentrantMutex) Unlock() {
	m.depth--
	if m.depth > 0 {
		return
	}
	m.owner.Store(0, atomic.Relaxed)
	m.locked.Store(false, atomic.Release)
}

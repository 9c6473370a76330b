// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ptb

import (
	stdatomic "sync/atomic"
	"unsafe"

	lfcoreatomic "code.hybscloud.com/lfcore/atomic"
)

// Guard wraps one pool guard drawn via [ThreadGC.AcquireGuard]. Set
// publishes post with release semantics; Liberate reads it with acquire.
type Guard struct {
	g *guard
}

// Set publishes p as the pointer this guard protects.
func (guard *Guard) Set(p unsafe.Pointer) {
	stdatomic.StorePointer(&guard.g.post, p)
}

// ProtectLink loads addr, publishes the load, then re-reads addr; if the
// two reads agree it returns the protected value, otherwise it retries.
// Mirrors [hp.Guard.ProtectLink]'s idiom for the PTB scheme.
func (guard *Guard) ProtectLink(addr *unsafe.Pointer) unsafe.Pointer {
	for {
		p := stdatomic.LoadPointer(addr)
		guard.Set(p)
		if stdatomic.LoadPointer(addr) == p {
			return p
		}
	}
}

// Clear withdraws the guard's protection without returning it to the pool.
func (guard *Guard) Clear() {
	stdatomic.StorePointer(&guard.g.post, nil)
}

// Release returns the guard to the global pool. Any node still trapped
// in its hand-off remains there until a future Liberate call resolves it.
func (guard *Guard) Release() {
	stdatomic.StorePointer(&guard.g.post, nil)
	guard.g.free.Store(true, lfcoreatomic.Release)
}

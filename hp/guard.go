// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hp

import (
	stdatomic "sync/atomic"
	"unsafe"
)

// Guard is one hazard slot checked out from a [ThreadGC]. While Set names
// a pointer, the GC guarantees no Scan will free it. Release it (or let
// its ThreadGC detach) when the protected pointer is no longer needed.
type Guard struct {
	tgc *ThreadGC
	idx int
}

// Set publishes p into the guard's hazard slot.
func (g *Guard) Set(p unsafe.Pointer) {
	stdatomic.StorePointer(&g.tgc.rec.hazards[g.idx], p)
}

// ProtectLink is the source's protect_link idiom: the only safe way to
// acquire a hazard on a shared pointer that may be concurrently retired.
// It loads addr, publishes the load in the guard, then re-reads addr; if
// the two reads agree it returns the protected value, otherwise it
// retries.
func (g *Guard) ProtectLink(addr *unsafe.Pointer) unsafe.Pointer {
	for {
		p := stdatomic.LoadPointer(addr)
		g.Set(p)
		if stdatomic.LoadPointer(addr) == p {
			return p
		}
	}
}

// Release clears the slot and returns it to the owning ThreadGC's free
// pool.
func (g *Guard) Release() {
	stdatomic.StorePointer(&g.tgc.rec.hazards[g.idx], nil)
	g.tgc.rec.used[g.idx] = false
}

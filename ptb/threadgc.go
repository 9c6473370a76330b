// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ptb

import (
	stdatomic "sync/atomic"
	"unsafe"
)

// ThreadGC is the middle layer between the GC kernel and one goroutine.
// Obtain one via [GC.Attach] or [GC.AttachCurrent].
type ThreadGC struct {
	gc    *GC
	local []*retiredNode
}

// AcquireGuard draws one guard from the global pool.
func (tgc *ThreadGC) AcquireGuard() *Guard {
	return &Guard{g: tgc.gc.acquireGuard()}
}

// Retire appends {p, deleter} to this thread's local retired list. When
// the list reaches the GC's liberate threshold, it is flushed into the
// global retired buffer and this thread runs Liberate.
func (tgc *ThreadGC) Retire(p unsafe.Pointer, deleter func(unsafe.Pointer)) {
	tgc.local = append(tgc.local, &retiredNode{ptr: p, deleter: deleter})
	if len(tgc.local) >= tgc.gc.liberateThreshold {
		tgc.flush()
		tgc.Liberate()
	}
}

func (tgc *ThreadGC) flush() {
	for _, n := range tgc.local {
		tgc.gc.pushRetired(n)
	}
	tgc.local = tgc.local[:0]
}

// Detach flushes any remaining thread-local retired nodes into the
// global buffer. It does not return guards to the pool; call
// [Guard.Release] on each guard this thread drew once it stops using it.
func (tgc *ThreadGC) Detach() {
	tgc.flush()
}

// Liberate is the source's liberate procedure (spec.md §4.4.3):
//
//  1. Steal the global retired buffer into a working set S.
//  2. Walk every guard in the pool. A guard whose post names a node in S
//     traps that node in its hand-off, evicting whatever it had trapped
//     before back into S (or, if that evicted node was already evicted
//     once this same pass, onto the global retired buffer instead — this
//     bounds the walk to one pass over the guard list). A guard whose
//     hand-off no longer matches its post releases that hand-off back
//     into S for the rest of this pass.
//  3. Every node still in S once every guard has been visited is freed.
func (tgc *ThreadGC) Liberate() {
	tgc.gc.stats.liberateCalls.Inc()

	stolen := tgc.gc.stealRetired()
	working := make(map[unsafe.Pointer]*retiredNode, len(stolen))
	for _, n := range stolen {
		working[n.ptr] = n
	}
	seen := make(map[unsafe.Pointer]bool)

	for g := tgc.gc.guards.Load(); g != nil; g = g.next.Load() {
		post := stdatomic.LoadPointer(&g.post)

		if post != nil {
			if node, ok := working[post]; ok {
				delete(working, post)
				old := g.handoff.Swap(node)
				tgc.gc.stats.trappedNodes.Inc()
				if old != nil {
					if seen[old.ptr] {
						tgc.gc.pushRetired(old)
					} else {
						seen[old.ptr] = true
						working[old.ptr] = old
					}
				}
				continue
			}
		}

		if ho := g.handoff.Load(); ho != nil {
			if stdatomic.LoadPointer(&g.post) != ho.ptr {
				// ho is leaving this guard's hand-off either way: clear it
				// now so a later, independent Liberate call never reads it
				// again and double-frees the node it points to.
				g.handoff.CompareAndSwap(ho, nil)
				if seen[ho.ptr] {
					tgc.gc.pushRetired(ho)
				} else {
					seen[ho.ptr] = true
					working[ho.ptr] = ho
				}
			}
		}
	}

	for _, n := range working {
		n.deleter(n.ptr)
		tgc.gc.stats.deletedNodes.Inc()
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hp

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/lfcore"
	"code.hybscloud.com/lfcore/atomic"
)

// ThreadGC is the middle layer between the GC kernel and one goroutine:
// the source's cds::gc::hzp::ThreadGC. Obtain one via [GC.Attach] or
// [GC.AttachCurrent]; call [ThreadGC.Detach] when done with it.
type ThreadGC struct {
	gc  *GC
	rec *record
}

// Detach clears every hazard slot, leaves retired entries in place for a
// future HelpScan to collect, and marks the record free for reuse.
func (tgc *ThreadGC) Detach() {
	tgc.rec.clearHazards()
	tgc.rec.free.Store(true, atomic.Release)
}

// AcquireGuard claims one of this thread's hazard slots. It returns
// lfcore.ErrPrecondition wrapped with context if every slot configured by
// [WithHazardsPerThread] is already checked out.
func (tgc *ThreadGC) AcquireGuard() (*Guard, error) {
	for i, used := range tgc.rec.used {
		if !used {
			tgc.rec.used[i] = true
			return &Guard{tgc: tgc, idx: i}, nil
		}
	}
	return nil, fmt.Errorf("hp: thread exhausted its %d hazard slots: %w", len(tgc.rec.used), lfcore.ErrPrecondition)
}

// Retire hands off a logically-deleted node for eventual reclamation. If
// the thread's retired buffer is at capacity, Retire runs Scan then
// HelpScan before returning.
func (tgc *ThreadGC) Retire(p unsafe.Pointer, deleter func(unsafe.Pointer)) {
	tgc.rec.retired = append(tgc.rec.retired, retiredEntry{ptr: p, deleter: deleter})
	tgc.gc.stats.retireHPRec.Inc()
	if len(tgc.rec.retired) >= tgc.gc.maxRetiredPerThread {
		tgc.Scan()
		tgc.HelpScan()
	}
}

// Scan is the source's Scan algorithm: collect every hazard pointer
// currently published GC-wide, then free every retired node this thread
// holds that no hazard names.
func (tgc *ThreadGC) Scan() {
	tgc.gc.stats.scanCalls.Inc()
	hazards := tgc.gc.collectHazards()

	kept := tgc.rec.retired[:0]
	for _, e := range tgc.rec.retired {
		if _, named := hazards[e.ptr]; named {
			kept = append(kept, e)
			tgc.gc.stats.deferredNodes.Inc()
		} else {
			e.deleter(e.ptr)
			tgc.gc.stats.deletedNodes.Inc()
		}
	}
	tgc.rec.retired = kept
}

// HelpScan claims every other record that is currently free, drains its
// leftover retired entries into this thread's own buffer (scanning again
// if that would overflow), and releases the record back to free.
//
// The source additionally requires the claimed record's owner id to be a
// dead thread; this port has no such signal (see package doc) and instead
// treats "free" as sufficient license to help — a free record has no
// owner to race with by construction.
func (tgc *ThreadGC) HelpScan() {
	tgc.gc.stats.helpScanCalls.Inc()
	for r := tgc.gc.head.Load(); r != nil; r = r.next.Load() {
		if r == tgc.rec {
			continue
		}
		if !r.free.Load(atomic.Acquire) {
			continue
		}
		if !r.free.CAS(true, false) {
			continue
		}

		moved := r.retired
		r.retired = nil
		for _, e := range moved {
			tgc.rec.retired = append(tgc.rec.retired, e)
			if len(tgc.rec.retired) >= tgc.gc.maxRetiredPerThread {
				tgc.gc.stats.scanFromHelpScan.Inc()
				tgc.Scan()
			}
		}

		r.free.Store(true, atomic.Release)
	}
}

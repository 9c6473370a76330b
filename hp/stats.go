// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hp

import "code.hybscloud.com/lfcore/atomic"

// stats mirrors the source GarbageCollector::Statistics: relaxed event
// counters, statistics only, never on a control path.
type stats struct {
	allocHPRec       atomic.EventCounter
	allocNewHPRec    atomic.EventCounter
	retireHPRec      atomic.EventCounter
	scanCalls        atomic.EventCounter
	helpScanCalls    atomic.EventCounter
	scanFromHelpScan atomic.EventCounter
	deletedNodes     atomic.EventCounter
	deferredNodes    atomic.EventCounter
}

// InternalState is an immutable snapshot of GC statistics (source
// GarbageCollector::InternalState), for introspection only.
type InternalState struct {
	HazardsPerThread    int
	MaxThreads          int
	MaxRetiredPerThread int

	RecordsAllocated int
	RecordsInUse     int

	AllocHPRec       uint64
	AllocNewHPRec    uint64
	RetireHPRec      uint64
	ScanCalls        uint64
	HelpScanCalls    uint64
	ScanFromHelpScan uint64
	DeletedNodes     uint64
	DeferredNodes    uint64
}

// Stats returns a point-in-time snapshot of the GC's internal counters.
func (gc *GC) Stats() InternalState {
	allocated, inUse := 0, 0
	for r := gc.head.Load(); r != nil; r = r.next.Load() {
		allocated++
		if !r.free.Load(atomic.Acquire) {
			inUse++
		}
	}
	return InternalState{
		HazardsPerThread:    gc.hazardsPerThread,
		MaxThreads:          gc.maxThreads,
		MaxRetiredPerThread: gc.maxRetiredPerThread,
		RecordsAllocated:    allocated,
		RecordsInUse:        inUse,
		AllocHPRec:          gc.stats.allocHPRec.Load(),
		AllocNewHPRec:       gc.stats.allocNewHPRec.Load(),
		RetireHPRec:         gc.stats.retireHPRec.Load(),
		ScanCalls:           gc.stats.scanCalls.Load(),
		HelpScanCalls:       gc.stats.helpScanCalls.Load(),
		ScanFromHelpScan:    gc.stats.scanFromHelpScan.Load(),
		DeletedNodes:        gc.stats.deletedNodes.Load(),
		DeferredNodes:       gc.stats.deferredNodes.Load(),
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ptb

import "code.hybscloud.com/lfcore/atomic"

type stats struct {
	allocGuard    atomic.EventCounter
	liberateCalls atomic.EventCounter
	trappedNodes  atomic.EventCounter
	deletedNodes  atomic.EventCounter
}

// InternalState is an immutable snapshot of GC statistics, for
// introspection only.
type InternalState struct {
	LiberateThreshold    int
	InitialGuardsPerThread int

	GuardsAllocated int
	GuardsInUse     int

	LiberateCalls uint64
	TrappedNodes  uint64
	DeletedNodes  uint64
}

// Stats returns a point-in-time snapshot of the GC's internal counters.
func (gc *GC) Stats() InternalState {
	allocated, inUse := 0, 0
	for g := gc.guards.Load(); g != nil; g = g.next.Load() {
		allocated++
		if !g.free.Load(atomic.Acquire) {
			inUse++
		}
	}
	return InternalState{
		LiberateThreshold:      gc.liberateThreshold,
		InitialGuardsPerThread: gc.initialGuardsPerThread,
		GuardsAllocated:        allocated,
		GuardsInUse:            inUse,
		LiberateCalls:          gc.stats.liberateCalls.Load(),
		TrappedNodes:           gc.stats.trappedNodes.Load(),
		DeletedNodes:           gc.stats.deletedNodes.Load(),
	}
}

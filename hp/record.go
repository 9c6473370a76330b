// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hp

import (
	stdatomic "sync/atomic"
	"unsafe"

	"code.hybscloud.com/lfcore/atomic"
)

// record is one thread's hazard-pointer record (HPRec in the source):
// a fixed-size hazard-slot array, an owner-private retired-pointer
// buffer, and a free flag. Records are linked in a singleton,
// append-only global list and are never freed for the life of the GC.
type record struct {
	next stdatomic.Pointer[record]

	// free is true iff this record is not currently owned by any
	// ThreadGC. CAS-claiming it (true->false) is how Attach and
	// HelpScan both take ownership.
	free atomic.BoolCell

	// hazards is read by any thread with acquire semantics (scan's
	// hazard collection) and written only by the owning ThreadGC.
	hazards []unsafe.Pointer
	// used is the owner-private bitmap of which hazards slots are
	// currently handed out as a Guard.
	used []bool

	// retired is owner-private while the record is owned; once freed it
	// passes to whichever ThreadGC next claims the record: Attach keeps
	// it as the new owner's buffer, HelpScan moves it into its own.
	retired []retiredEntry
}

type retiredEntry struct {
	ptr     unsafe.Pointer
	deleter func(unsafe.Pointer)
}

func newRecord(hazardsPerThread, maxRetiredPerThread int) *record {
	r := &record{
		hazards: make([]unsafe.Pointer, hazardsPerThread),
		used:    make([]bool, hazardsPerThread),
		retired: make([]retiredEntry, 0, maxRetiredPerThread),
	}
	return r
}

func (r *record) clearHazards() {
	for i := range r.hazards {
		stdatomic.StorePointer(&r.hazards[i], nil)
		r.used[i] = false
	}
}

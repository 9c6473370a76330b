// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hp

import (
	"sync"
	stdatomic "sync/atomic"
	"unsafe"

	"code.hybscloud.com/lfcore/internal/gid"
)

const (
	defaultHazardsPerThread = 8
	defaultMaxThreads       = 100
)

// Option configures a GC at construction.
type Option func(*GC)

// WithHazardsPerThread sets the number of hazard slots each ThreadGC may
// hand out. Default 8.
func WithHazardsPerThread(n int) Option {
	return func(gc *GC) { gc.hazardsPerThread = n }
}

// WithMaxThreads sets the expected upper bound on concurrently attached
// threads, used only to size the default retired-buffer capacity. Default
// 100.
func WithMaxThreads(n int) Option {
	return func(gc *GC) { gc.maxThreads = n }
}

// WithMaxRetiredPerThread sets the retired-buffer capacity per thread
// that triggers Scan+HelpScan when reached. Default 2*N*T.
func WithMaxRetiredPerThread(n int) Option {
	return func(gc *GC) { gc.maxRetiredPerThread = n }
}

// GC is the process-wide Hazard-Pointer garbage collector singleton.
// Construct one with [New] before any goroutine attaches.
type GC struct {
	head stdatomic.Pointer[record]

	hazardsPerThread    int
	maxThreads          int
	maxRetiredPerThread int

	stats stats

	current sync.Map // goroutine id (string) -> *ThreadGC, used by AttachCurrent only
}

// New constructs a GC. It is the caller's responsibility to keep it alive
// for the lifetime of every container built on it and to call [GC.Destroy]
// only after every attached thread has detached.
func New(opts ...Option) *GC {
	gc := &GC{
		hazardsPerThread: defaultHazardsPerThread,
		maxThreads:       defaultMaxThreads,
	}
	for _, opt := range opts {
		opt(gc)
	}
	if gc.maxRetiredPerThread <= 0 {
		gc.maxRetiredPerThread = 2 * gc.hazardsPerThread * gc.maxThreads
	}
	return gc
}

// Attach obtains a ThreadGC for the calling goroutine: it reuses a free
// record from the global list if one exists, else allocates and
// publishes a new one. Attach is cheap to call repeatedly but each
// returned *ThreadGC must eventually be [ThreadGC.Detach]ed.
func (gc *GC) Attach() *ThreadGC {
	for r := gc.head.Load(); r != nil; r = r.next.Load() {
		if r.free.CAS(true, false) {
			r.clearHazards()
			// retired is left as-is: whoever freed this record may have
			// left entries behind (see record.retired's doc comment), and
			// the new owner inherits them rather than silently dropping
			// their deleters. They drain via this owner's own Scan/HelpScan.
			gc.stats.allocHPRec.Inc()
			return &ThreadGC{gc: gc, rec: r}
		}
	}

	r := newRecord(gc.hazardsPerThread, gc.maxRetiredPerThread)
	for {
		head := gc.head.Load()
		r.next.Store(head)
		if gc.head.CompareAndSwap(head, r) {
			break
		}
	}
	gc.stats.allocNewHPRec.Inc()
	return &ThreadGC{gc: gc, rec: r}
}

// AttachCurrent is a convenience over [GC.Attach] that memoizes the
// returned *ThreadGC per calling goroutine, so repeated calls from the
// same goroutine are idempotent and return the same handle. It identifies
// the goroutine via its runtime-assigned id, parsed best-effort from
// runtime.Stack; this is diagnostic machinery the Go runtime does not
// guarantee to keep stable, so long-lived code should prefer threading
// the *ThreadGC returned by [GC.Attach] explicitly instead.
func (gc *GC) AttachCurrent() *ThreadGC {
	id := gid.Current()
	if v, ok := gc.current.Load(id); ok {
		return v.(*ThreadGC)
	}
	tgc := gc.Attach()
	actual, loaded := gc.current.LoadOrStore(id, tgc)
	if loaded {
		tgc.Detach()
		return actual.(*ThreadGC)
	}
	return tgc
}

// DetachCurrent detaches and forgets the ThreadGC memoized for the
// calling goroutine by AttachCurrent, if any.
func (gc *GC) DetachCurrent() {
	id := gid.Current()
	if v, ok := gc.current.LoadAndDelete(id); ok {
		v.(*ThreadGC).Detach()
	}
}

// collectHazards gathers every non-nil hazard pointer currently published
// across every record in the global list (source Scan step 1-2): acquire
// loads so publication by other threads is visible.
func (gc *GC) collectHazards() map[unsafe.Pointer]struct{} {
	h := make(map[unsafe.Pointer]struct{})
	for r := gc.head.Load(); r != nil; r = r.next.Load() {
		for i := range r.hazards {
			p := stdatomic.LoadPointer(&r.hazards[i])
			if p != nil {
				h[p] = struct{}{}
			}
		}
	}
	return h
}

// Destroy drains every record's retired buffer, calling each deleter
// unconditionally. Calling Destroy while any thread is still attached, or
// while any hazard slot still names a pointer, is undefined — mirrors the
// source's "destruction with live attached threads is undefined".
func (gc *GC) Destroy() {
	for r := gc.head.Load(); r != nil; r = r.next.Load() {
		for _, e := range r.retired {
			e.deleter(e.ptr)
			gc.stats.deletedNodes.Inc()
		}
		r.retired = nil
	}
}

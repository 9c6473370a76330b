// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ptb

import (
	"sync"
	stdatomic "sync/atomic"

	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/internal/gid"
)

const (
	defaultLiberateThreshold      = 256
	defaultInitialGuardsPerThread = 8
)

// Option configures a GC at construction.
type Option func(*GC)

// WithLiberateThreshold sets the thread-local retired-list size that
// triggers a flush-and-liberate. Default 256.
func WithLiberateThreshold(n int) Option {
	return func(gc *GC) { gc.liberateThreshold = n }
}

// WithInitialGuardsPerThread pre-warms the global guard pool with this
// many free guards at construction time, reducing early-attach
// contention on the pool's append path. Default 8.
func WithInitialGuardsPerThread(n int) Option {
	return func(gc *GC) { gc.initialGuardsPerThread = n }
}

// GC is the process-wide Pass-the-Buck garbage collector singleton.
type GC struct {
	guards  stdatomic.Pointer[guard]
	retired stdatomic.Pointer[retiredNode]

	liberateThreshold      int
	initialGuardsPerThread int

	stats stats

	current sync.Map // goroutine id (string) -> *ThreadGC, used by AttachCurrent only
}

// New constructs a GC, pre-warming the guard pool with
// initialGuardsPerThread free guards.
func New(opts ...Option) *GC {
	gc := &GC{
		liberateThreshold:      defaultLiberateThreshold,
		initialGuardsPerThread: defaultInitialGuardsPerThread,
	}
	for _, opt := range opts {
		opt(gc)
	}
	for i := 0; i < gc.initialGuardsPerThread; i++ {
		g := newGuard()
		g.free.Store(true, atomic.Relaxed)
		for {
			head := gc.guards.Load()
			g.next.Store(head)
			if gc.guards.CompareAndSwap(head, g) {
				break
			}
		}
	}
	return gc
}

// Attach returns a ThreadGC for the calling goroutine. Each returned
// *ThreadGC should eventually call [ThreadGC.Detach], which flushes its
// local retired list; guards go back to the pool only through
// [Guard.Release].
func (gc *GC) Attach() *ThreadGC {
	return &ThreadGC{gc: gc}
}

// AttachCurrent memoizes the returned *ThreadGC per calling goroutine,
// identified best-effort via runtime.Stack (see the hp package doc for
// the same caveat: prefer threading the handle explicitly in long-lived
// code).
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

// Destroy calls every remaining retired node's deleter unconditionally,
// across both the global buffer and every guard's hand-off. Calling
// Destroy with live attached threads is undefined.
func (gc *GC) Destroy() {
	for n := gc.retired.Swap(nil); n != nil; n = n.next {
		n.deleter(n.ptr)
		gc.stats.deletedNodes.Inc()
	}
	for g := gc.guards.Load(); g != nil; g = g.next.Load() {
		if n := g.handoff.Swap(nil); n != nil {
			n.deleter(n.ptr)
			gc.stats.deletedNodes.Inc()
		}
	}
}

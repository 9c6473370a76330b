// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ptb

import (
	stdatomic "sync/atomic"
	"unsafe"

	"code.hybscloud.com/lfcore/atomic"
)

// guard is one element of the global guard pool (spec.md §3.5). post is
// the pointer currently protected by whichever thread owns this guard;
// handoff is a node liberate has trapped here because some guard's post
// still names it. Guards are never destroyed; an idle guard is returned
// to the pool by setting free.
type guard struct {
	next stdatomic.Pointer[guard]

	free atomic.BoolCell

	post    unsafe.Pointer // accessed via sync/atomic raw pointer ops
	handoff stdatomic.Pointer[retiredNode]
}

// retiredNode is one entry in a thread-local retire list or the global
// retired buffer.
type retiredNode struct {
	ptr     unsafe.Pointer
	deleter func(unsafe.Pointer)
	next    *retiredNode
}

func newGuard() *guard {
	return &guard{}
}

// acquireGuard claims a free guard from the pool, or allocates and
// publishes a new one if none is free.
func (gc *GC) acquireGuard() *guard {
	for g := gc.guards.Load(); g != nil; g = g.next.Load() {
		if g.free.CAS(true, false) {
			return g
		}
	}

	g := newGuard()
	for {
		head := gc.guards.Load()
		g.next.Store(head)
		if gc.guards.CompareAndSwap(head, g) {
			return g
		}
	}
}

// pushRetired pushes n onto the global retired buffer with a single CAS
// loop on the head pointer (spec.md §4.4.4).
func (gc *GC) pushRetired(n *retiredNode) {
	for {
		head := gc.retired.Load()
		n.next = head
		if gc.retired.CompareAndSwap(head, n) {
			return
		}
	}
}

// stealRetired atomically swaps the entire global retired buffer for nil
// and returns it as a slice.
func (gc *GC) stealRetired() []*retiredNode {
	head := gc.retired.Swap(nil)
	var out []*retiredNode
	for n := head; n != nil; n = n.next {
		out = append(out, n)
	}
	return out
}

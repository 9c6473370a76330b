// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomic

import (
	stdatomic "sync/atomic"
	"unsafe"
)

// Tagged128 is a {pointer, tag} pair mutated atomically together (spec.md
// §3.3): every successful mutation bumps tag, closing the ABA window a
// bare pointer CAS would leave open on reuse.
//
// The source relies on a hardware double-wide (128-bit) CAS where
// available, falling back to a CAS loop otherwise (spec.md §3.2). Go's
// sync/atomic has no 128-bit primitive on any platform, and exposing one
// only on architectures that happen to support CMPXCHG16B would mean the
// tagged queue/list variants silently vanish elsewhere — spec.md §9's
// Open Question flags exactly this choice. Tagged128 resolves it by boxing
// {ptr, tag} into a single heap-allocated struct CAS'd through
// sync/atomic.Pointer: one allocation per mutation buys a tagged pointer
// that is ABA-safe and available identically on every platform Go
// supports.
type Tagged128 struct {
	box stdatomic.Pointer[tagged128Box]
}

type tagged128Box struct {
	ptr unsafe.Pointer
	tag uint64
}

// NewTagged128 returns a Tagged128 initialized to {ptr, tag}.
func NewTagged128(ptr unsafe.Pointer, tag uint64) *Tagged128 {
	t := &Tagged128{}
	t.box.Store(&tagged128Box{ptr: ptr, tag: tag})
	return t
}

// Load returns the current {ptr, tag} pair.
func (t *Tagged128) Load(_ Order) (ptr unsafe.Pointer, tag uint64) {
	b := t.box.Load()
	if b == nil {
		return nil, 0
	}
	return b.ptr, b.tag
}

// Store unconditionally overwrites {ptr, tag}.
func (t *Tagged128) Store(ptr unsafe.Pointer, tag uint64, _ Order) {
	t.box.Store(&tagged128Box{ptr: ptr, tag: tag})
}

// CompareAndSwap swaps in {newPtr, newTag} iff the current pair equals
// {oldPtr, oldTag}.
func (t *Tagged128) CompareAndSwap(oldPtr unsafe.Pointer, oldTag uint64, newPtr unsafe.Pointer, newTag uint64, _, _ Order) bool {
	old := t.box.Load()
	if old == nil {
		return oldPtr == nil && oldTag == 0 && t.box.CompareAndSwap(nil, &tagged128Box{ptr: newPtr, tag: newTag})
	}
	if old.ptr != oldPtr || old.tag != oldTag {
		return false
	}
	return t.box.CompareAndSwap(old, &tagged128Box{ptr: newPtr, tag: newTag})
}

// CompareAndSwapBumpTag is the common case: swap in newPtr iff the pair is
// still {oldPtr, oldTag}, automatically incrementing the tag.
func (t *Tagged128) CompareAndSwapBumpTag(oldPtr unsafe.Pointer, oldTag uint64, newPtr unsafe.Pointer) bool {
	return t.CompareAndSwap(oldPtr, oldTag, newPtr, oldTag+1, AcqRel, Relaxed)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package list

import (
	"unsafe"

	lfcore "code.hybscloud.com/lfcore"
	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/hp"
)

const (
	unmarked uint64 = 0
	marked   uint64 = 1
)

type michaelNode[K lfcore.Ordered, V any] struct {
	key   K
	value V
	next  atomic.Tagged128 // ptr -> *michaelNode[K,V]; tag is the mark bit (unmarked/marked), not an ABA generation
}

// MichaelList is the sorted singly-linked set of spec.md §4.9: deletion
// marks a node's next pointer before physically unlinking it, and any
// concurrent Search that encounters a marked node helps finish the
// physical unlink before continuing. The mark is carried in
// atomic.Tagged128's tag field rather than a pointer low bit, for the same
// GC-soundness reason as queue.lmsNode's isDummy field.
type MichaelList[K lfcore.Ordered, V any] struct {
	gc   *hp.GC
	head atomic.Tagged128 // ptr -> *michaelNode[K,V], tag always unmarked
	size atomic.Cell[int64]
}

// NewMichaelList constructs an empty MichaelList backed by gc.
func NewMichaelList[K lfcore.Ordered, V any](gc *hp.GC) *MichaelList[K, V] {
	return &MichaelList[K, V]{gc: gc}
}

func michaelDeleter[K lfcore.Ordered, V any](p unsafe.Pointer) {
	n := (*michaelNode[K, V])(p)
	var zero unsafe.Pointer
	n.next.Store(zero, 0, atomic.Relaxed)
}

func protectTagged(g *hp.Guard, t *atomic.Tagged128) (unsafe.Pointer, uint64) {
	for {
		ptr, tag := t.Load(atomic.Acquire)
		g.Set(ptr)
		p2, t2 := t.Load(atomic.Acquire)
		if p2 == ptr && t2 == tag {
			return ptr, tag
		}
	}
}

// search implements spec.md §4.9's Search(key), restarting from head
// whenever it cooperatively completes a physical unlink (a simplification
// over resuming mid-walk: still linearizable, just occasionally re-walks a
// short unmarked prefix).
func (l *MichaelList[K, V]) search(tgc *hp.ThreadGC, key K) (prevLink *atomic.Tagged128, cur *michaelNode[K, V], next unsafe.Pointer, found bool, err error) {
	h0, err := tgc.AcquireGuard()
	if err != nil {
		return nil, nil, nil, false, err
	}
	defer h0.Release()
	h1, err := tgc.AcquireGuard()
	if err != nil {
		return nil, nil, nil, false, err
	}
	defer h1.Release()
	h2, err := tgc.AcquireGuard()
	if err != nil {
		return nil, nil, nil, false, err
	}
	defer h2.Release()

	// Three guards, per spec.md §4.9: hPred protects the node addressed by
	// prevLink (nothing to protect while prevLink == &l.head itself), hCur
	// protects cur, hNext protects cur.next's target while it is read and
	// validated. Advancing the walk rotates the three rather than
	// reassigning hCur alone: cur becomes the new predecessor and must
	// stay guarded for as long as prevLink still points into it.
	hPred, hCur, hNext := h0, h1, h2

retry:
	prevLink = &l.head
	curPtr, curTag := protectTagged(hCur, prevLink)
	for curPtr != nil {
		curNode := (*michaelNode[K, V])(curPtr)
		nextPtr, nextTag := protectTagged(hNext, &curNode.next)

		p2, t2 := prevLink.Load(atomic.Acquire)
		if p2 != curPtr || t2 != curTag {
			goto retry
		}

		if nextTag == marked {
			if !prevLink.CompareAndSwap(curPtr, curTag, nextPtr, unmarked, atomic.Release, atomic.Relaxed) {
				goto retry
			}
			tgc.Retire(curPtr, michaelDeleter[K, V])
			l.size.Add(-1, atomic.Relaxed)
			goto retry
		}

		if curNode.key >= key {
			return prevLink, curNode, nextPtr, curNode.key == key, nil
		}

		prevLink = &curNode.next
		hPred, hCur, hNext = hCur, hNext, hPred
		curPtr, curTag = nextPtr, nextTag
	}
	return prevLink, nil, nil, false, nil
}

// Insert implements spec.md §4.9.
func (l *MichaelList[K, V]) Insert(key K, value V) (bool, error) {
	tgc := l.gc.AttachCurrent()
	newNode := &michaelNode[K, V]{key: key, value: value}
	for {
		prevLink, cur, next, found, err := l.search(tgc, key)
		if err != nil {
			return false, err
		}
		if found {
			return false, nil
		}
		prevPtr, prevTag := prevLink.Load(atomic.Acquire)
		expectedPtr := unsafe.Pointer(cur)
		if cur == nil {
			expectedPtr = nil
		}
		if prevPtr != expectedPtr {
			continue
		}
		if cur != nil {
			newNode.next.Store(unsafe.Pointer(cur), unmarked, atomic.Relaxed)
		} else {
			newNode.next.Store(next, unmarked, atomic.Relaxed)
		}
		if prevLink.CompareAndSwap(prevPtr, prevTag, unsafe.Pointer(newNode), unmarked, atomic.Release, atomic.Relaxed) {
			l.size.Add(1, atomic.Relaxed)
			return true, nil
		}
	}
}

// Erase implements spec.md §4.9: logical mark, then cooperative physical
// unlink (by this call or a concurrent Search/Insert/Erase, whichever
// notices the mark first).
func (l *MichaelList[K, V]) Erase(key K) (bool, error) {
	tgc := l.gc.AttachCurrent()
	for {
		_, cur, next, found, err := l.search(tgc, key)
		if err != nil {
			return false, err
		}
		if !found {
			return false, nil
		}
		curNextPtr, curNextTag := cur.next.Load(atomic.Acquire)
		if curNextTag == marked {
			continue
		}
		if curNextPtr != next {
			continue
		}
		if cur.next.CompareAndSwap(next, unmarked, next, marked, atomic.Release, atomic.Relaxed) {
			// best-effort immediate physical unlink; if it fails, the next
			// Search to pass this node will finish the job.
			l.search(tgc, key)
			return true, nil
		}
	}
}

// Find implements spec.md §4.9.
func (l *MichaelList[K, V]) Find(key K) (bool, error) {
	tgc := l.gc.AttachCurrent()
	_, _, _, found, err := l.search(tgc, key)
	return found, err
}

// FindCopy implements spec.md §4.8's interface extension: invokes copier
// with a reference to the value for the duration of the call only. The
// hazard guards taken by search are released before copier runs, so a
// concurrent Erase may retire the node meanwhile; the node's memory stays
// valid under Go's garbage collector, and retiring it clears only its
// next link.
func (l *MichaelList[K, V]) FindCopy(key K, copier func(value *V)) (bool, error) {
	tgc := l.gc.AttachCurrent()
	_, cur, _, found, err := l.search(tgc, key)
	if err != nil || !found {
		return found, err
	}
	copier(&cur.value)
	return true, nil
}

// Ensure implements spec.md §4.9.
func (l *MichaelList[K, V]) Ensure(key K, value V, updater func(existing *V)) (bool, bool, error) {
	tgc := l.gc.AttachCurrent()
	newNode := &michaelNode[K, V]{key: key, value: value}
	for {
		prevLink, cur, next, found, err := l.search(tgc, key)
		if err != nil {
			return false, false, err
		}
		if found {
			updater(&cur.value)
			return true, false, nil
		}
		prevPtr, prevTag := prevLink.Load(atomic.Acquire)
		expectedPtr := unsafe.Pointer(cur)
		if cur == nil {
			expectedPtr = nil
		}
		if prevPtr != expectedPtr {
			continue
		}
		if cur != nil {
			newNode.next.Store(unsafe.Pointer(cur), unmarked, atomic.Relaxed)
		} else {
			newNode.next.Store(next, unmarked, atomic.Relaxed)
		}
		if prevLink.CompareAndSwap(prevPtr, prevTag, unsafe.Pointer(newNode), unmarked, atomic.Release, atomic.Relaxed) {
			l.size.Add(1, atomic.Relaxed)
			return false, true, nil
		}
	}
}

// Emplace implements spec.md §4.9: updates only, never inserts.
func (l *MichaelList[K, V]) Emplace(key K, updater func(existing *V)) (bool, error) {
	tgc := l.gc.AttachCurrent()
	_, cur, _, found, err := l.search(tgc, key)
	if err != nil || !found {
		return found, err
	}
	updater(&cur.value)
	return true, nil
}

// Empty reports whether the set had no elements at the moment of the
// call.
func (l *MichaelList[K, V]) Empty() bool {
	ptr, _ := l.head.Load(atomic.Acquire)
	return ptr == nil
}

// Size returns the approximate element count.
func (l *MichaelList[K, V]) Size() uint64 {
	n := l.size.Load(atomic.Relaxed)
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// Clear removes every element, returning the count removed. Non-atomic
// across the whole operation: concurrent Inserts may race it.
func (l *MichaelList[K, V]) Clear() uint64 {
	var n uint64
	for {
		ptr, _ := l.head.Load(atomic.Acquire)
		if ptr == nil {
			return n
		}
		node := (*michaelNode[K, V])(ptr)
		if ok, _ := l.Erase(node.key); ok {
			n++
		}
	}
}

// Iterate walks the list in key order, skipping logically-deleted nodes.
// Non-concurrent debug helper: callers must not mutate the list from
// another goroutine while iterating.
func (l *MichaelList[K, V]) Iterate(yield func(key K, value V) bool) {
	ptr, _ := l.head.Load(atomic.Acquire)
	for ptr != nil {
		node := (*michaelNode[K, V])(ptr)
		nextPtr, nextTag := node.next.Load(atomic.Acquire)
		if nextTag != marked {
			if !yield(node.key, node.value) {
				return
			}
		}
		ptr = nextPtr
	}
}

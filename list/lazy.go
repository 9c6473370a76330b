// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package list

import (
	stdatomic "sync/atomic"
	"unsafe"

	lfcore "code.hybscloud.com/lfcore"
	"code.hybscloud.com/lfcore/atomic"
	"code.hybscloud.com/lfcore/spinlock"
)

type lazyNode[K lfcore.Ordered, V any] struct {
	key    K
	value  V
	next   stdatomic.Pointer[lazyNode[K, V]]
	marked atomic.BoolCell
	lock   spinlock.Mutex
}

// LazyList is the sorted singly-linked set of spec.md §4.10: Search walks
// without locks, Insert/Erase lock pred and cur (address order, to avoid
// the lock-ordering deadlock two concurrent inserts racing on adjacent
// nodes would otherwise risk) and re-validate !pred.marked && !cur.marked
// && pred.next == cur before mutating. next is still an atomic pointer
// despite every write happening under a lock, because find's lock-free
// walk reads it concurrently. A dedicated tail sentinel (never removed,
// key comparisons skip it) terminates the list.
type LazyList[K lfcore.Ordered, V any] struct {
	head *lazyNode[K, V] // sentinel, never removed
	tail *lazyNode[K, V] // sentinel, never removed
	size atomic.Cell[int64]
}

// NewLazyList constructs an empty LazyList.
func NewLazyList[K lfcore.Ordered, V any]() *LazyList[K, V] {
	tail := &lazyNode[K, V]{}
	head := &lazyNode[K, V]{}
	head.next.Store(tail)
	return &LazyList[K, V]{head: head, tail: tail}
}

// find walks optimistically (no locks) and returns the predecessor and
// the first node whose key >= target, per spec.md §4.10.
func (l *LazyList[K, V]) find(key K) (pred, cur *lazyNode[K, V]) {
	pred = l.head
	cur = pred.next.Load()
	for cur != l.tail && cur.key < key {
		pred = cur
		cur = cur.next.Load()
	}
	return pred, cur
}

// lockInOrder locks a and b in address order, returning an unlock
// function that releases whichever locks were actually taken (a and b may
// be the same node).
func lockInOrder[K lfcore.Ordered, V any](a, b *lazyNode[K, V]) func() {
	if a == b {
		a.lock.Lock()
		return a.lock.Unlock
	}
	if uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b)) {
		a.lock.Lock()
		b.lock.Lock()
		return func() { b.lock.Unlock(); a.lock.Unlock() }
	}
	b.lock.Lock()
	a.lock.Lock()
	return func() { a.lock.Unlock(); b.lock.Unlock() }
}

func (l *LazyList[K, V]) validate(pred, cur *lazyNode[K, V]) bool {
	return !pred.marked.Load(atomic.Acquire) && !cur.marked.Load(atomic.Acquire) &&
		pred.next.Load() == cur
}

// Insert implements spec.md §4.10.
func (l *LazyList[K, V]) Insert(key K, value V) (bool, error) {
	for {
		pred, cur := l.find(key)
		unlock := lockInOrder(pred, cur)
		if !l.validate(pred, cur) {
			unlock()
			continue
		}
		if cur != l.tail && cur.key == key {
			unlock()
			return false, nil
		}
		n := &lazyNode[K, V]{key: key, value: value}
		n.next.Store(cur)
		pred.next.Store(n)
		unlock()
		l.size.Add(1, atomic.Relaxed)
		return true, nil
	}
}

// Erase implements spec.md §4.10.
func (l *LazyList[K, V]) Erase(key K) (bool, error) {
	for {
		pred, cur := l.find(key)
		unlock := lockInOrder(pred, cur)
		if !l.validate(pred, cur) {
			unlock()
			continue
		}
		if cur == l.tail || cur.key != key {
			unlock()
			return false, nil
		}
		cur.marked.Store(true, atomic.Release)
		pred.next.Store(cur.next.Load())
		unlock()
		l.size.Add(-1, atomic.Relaxed)
		return true, nil
	}
}

// Find implements spec.md §4.10.
func (l *LazyList[K, V]) Find(key K) (bool, error) {
	_, cur := l.find(key)
	return cur != l.tail && cur.key == key && !cur.marked.Load(atomic.Acquire), nil
}

// FindCopy implements spec.md §4.8's interface extension.
func (l *LazyList[K, V]) FindCopy(key K, copier func(value *V)) (bool, error) {
	_, cur := l.find(key)
	if cur == l.tail || cur.key != key || cur.marked.Load(atomic.Acquire) {
		return false, nil
	}
	copier(&cur.value)
	return true, nil
}

// Ensure implements spec.md §4.10's insert-or-update combinator.
func (l *LazyList[K, V]) Ensure(key K, value V, updater func(existing *V)) (bool, bool, error) {
	for {
		pred, cur := l.find(key)
		unlock := lockInOrder(pred, cur)
		if !l.validate(pred, cur) {
			unlock()
			continue
		}
		if cur != l.tail && cur.key == key {
			updater(&cur.value)
			unlock()
			return true, false, nil
		}
		n := &lazyNode[K, V]{key: key, value: value}
		n.next.Store(cur)
		pred.next.Store(n)
		unlock()
		l.size.Add(1, atomic.Relaxed)
		return false, true, nil
	}
}

// Emplace implements spec.md §4.10: updates only, never inserts.
func (l *LazyList[K, V]) Emplace(key K, updater func(existing *V)) (bool, error) {
	for {
		pred, cur := l.find(key)
		unlock := lockInOrder(pred, cur)
		if !l.validate(pred, cur) {
			unlock()
			continue
		}
		if cur == l.tail || cur.key != key {
			unlock()
			return false, nil
		}
		updater(&cur.value)
		unlock()
		return true, nil
	}
}

// Empty reports whether the set had no elements at the moment of the
// call.
func (l *LazyList[K, V]) Empty() bool {
	return l.head.next.Load() == l.tail
}

// Size returns the approximate element count.
func (l *LazyList[K, V]) Size() uint64 {
	n := l.size.Load(atomic.Relaxed)
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// Clear removes every element, returning the count removed.
func (l *LazyList[K, V]) Clear() uint64 {
	var n uint64
	for {
		cur := l.head.next.Load()
		if cur == l.tail {
			return n
		}
		if ok, _ := l.Erase(cur.key); ok {
			n++
		}
	}
}

// Iterate walks the list in key order, skipping logically-deleted nodes.
// Non-concurrent debug helper: callers must not mutate the list from
// another goroutine while iterating.
func (l *LazyList[K, V]) Iterate(yield func(key K, value V) bool) {
	cur := l.head.next.Load()
	for cur != l.tail {
		if !cur.marked.Load(atomic.Acquire) {
			if !yield(cur.key, cur.value) {
				return
			}
		}
		cur = cur.next.Load()
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package freelist

import (
	"unsafe"

	"code.hybscloud.com/lfcore/atomic"
)

// Node is one free-list element, carrying a user payload of type T. The
// zero value is a detached node ready for Push.
type Node[T any] struct {
	next unsafe.Pointer // *Node[T], reached only via the owning List's head
	Value T
}

// List is a lock-free LIFO free-list. The zero value is an empty list.
type List[T any] struct {
	head atomic.Tagged128
}

// Push returns n to the list for future reuse.
func (l *List[T]) Push(n *Node[T]) {
	for {
		oldPtr, oldTag := l.head.Load(atomic.Acquire)
		n.next = oldPtr
		if l.head.CompareAndSwapBumpTag(oldPtr, oldTag, unsafe.Pointer(n)) {
			return
		}
	}
}

// Pop removes and returns a node from the list, or nil if it is empty.
// The tag bump on every successful CAS is what makes this safe against
// ABA when the popped node is later Pushed back and Popped again by a
// concurrent racer.
func (l *List[T]) Pop() *Node[T] {
	for {
		oldPtr, oldTag := l.head.Load(atomic.Acquire)
		if oldPtr == nil {
			return nil
		}
		n := (*Node[T])(oldPtr)
		next := n.next
		if l.head.CompareAndSwapBumpTag(oldPtr, oldTag, next) {
			n.next = nil
			return n
		}
	}
}

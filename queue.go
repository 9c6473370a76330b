// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfcore

// Queue is the shape every container under queue/ satisfies: a
// non-blocking FIFO.
//
// Enqueue/Dequeue never block. An unbounded queue (MSQueue, MoirQueue,
// LMSQueue) only ever fails via ErrPrecondition (SMR misuse); a bounded
// queue (TZQueue) additionally reports a full queue by returning false
// from Enqueue, and both report an empty queue by returning false from
// Dequeue rather than by error.
type Queue[T any] interface {
	// Enqueue appends value. ok is false only for a bounded queue that is
	// full; err is non-nil only for ErrPrecondition.
	Enqueue(value T) (ok bool, err error)
	// Dequeue removes and returns the front value. ok is false iff the
	// queue was observed empty.
	Dequeue() (value T, ok bool, err error)
	// Empty reports whether the queue had no elements at the moment of
	// the call; under concurrent access this is a snapshot, not a lock.
	Empty() bool
	// Len returns an approximate element count, snapshot-consistent with
	// no single other operation per §6.
	Len() int
	// Clear dequeues every element, returning the count removed.
	Clear() int
}

// OrderedSet is the shape every container under list/ satisfies: a
// sorted associative set keyed by an ordered key type.
type OrderedSet[K Ordered, V any] interface {
	// Insert links (key, value) iff key is absent. ok is false if key was
	// already present; the set is unchanged in that case.
	Insert(key K, value V) (ok bool, err error)
	// Erase logically then physically removes key. ok is false if key was
	// absent.
	Erase(key K) (ok bool, err error)
	// Find reports whether key is present.
	Find(key K) (ok bool, err error)
	// FindCopy reports whether key is present and, if so, invokes copier
	// with a reference to its value for the duration of the call only.
	FindCopy(key K, copier func(value *V)) (ok bool, err error)
	// Ensure inserts (key, value) if key is absent, or invokes updater with
	// the existing value if present. found is true iff key was already
	// present (updater was called); inserted is true iff a new node was
	// linked. Exactly one of the two is true on success.
	Ensure(key K, value V, updater func(existing *V)) (found bool, inserted bool, err error)
	// Emplace invokes updater with the value at key iff key is present.
	Emplace(key K, updater func(existing *V)) (ok bool, err error)
	// Empty reports whether the set had no elements at the moment of the
	// call.
	Empty() bool
	// Size returns the approximate element count.
	Size() uint64
	// Clear removes every element, returning the count removed.
	Clear() uint64
	// Iterate is a non-concurrent debug walk in key order, skipping
	// logically-deleted nodes; yield returning false stops early. Callers
	// must not mutate the set from another goroutine while iterating.
	Iterate(yield func(key K, value V) bool)
}

// Ordered is the key constraint for OrderedSet: any type with Go's native
// ordering operators.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

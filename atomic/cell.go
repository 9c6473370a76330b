// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomic

import (
	"sync/atomic"
	"unsafe"
)

// Integer is the set of widths Cell supports: 32-bit and 64-bit words,
// signed or unsigned, plus pointer-width uintptr. This matches spec.md
// §3.2's "32-bit, 64-bit, pointer-width" support list; 128-bit values are
// handled separately by Tagged128 (§3.3), and the type system here simply
// has no instantiation for anything wider — satisfying spec.md §4.1's
// "the type system of the implementation language must prevent
// instantiation" requirement by construction.
type Integer interface {
	~int32 | ~uint32 | ~int64 | ~uint64 | ~uintptr
}

// Cell is a generic atomic cell of T. The ordering argument on every method
// documents the caller's intended synchronization; see [Order].
//
// Cell reinterprets its storage as the fixed-width sync/atomic primitive
// matching T's size at each call, rather than picking a concrete
// implementation type per instantiation (Go generics cannot select a
// struct field's type per type parameter the way C++ template
// specialization can). This mirrors the "rebind a generic node parameter"
// guidance in spec.md's Design Notes: one generic Cell[T] definition
// stands in for the per-width template specializations of the source.
type Cell[T Integer] struct {
	_ noCopy
	v T
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// NewCell returns a Cell initialized to v.
func NewCell[T Integer](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// Load reads the current value.
func (c *Cell[T]) Load(_ Order) T {
	switch unsafe.Sizeof(c.v) {
	case 4:
		r := atomic.LoadUint32((*uint32)(unsafe.Pointer(&c.v)))
		return *(*T)(unsafe.Pointer(&r))
	case 8:
		r := atomic.LoadUint64((*uint64)(unsafe.Pointer(&c.v)))
		return *(*T)(unsafe.Pointer(&r))
	default:
		panic("atomic: unsupported cell width")
	}
}

// Store writes v.
func (c *Cell[T]) Store(v T, _ Order) {
	switch unsafe.Sizeof(c.v) {
	case 4:
		atomic.StoreUint32((*uint32)(unsafe.Pointer(&c.v)), *(*uint32)(unsafe.Pointer(&v)))
	case 8:
		atomic.StoreUint64((*uint64)(unsafe.Pointer(&c.v)), *(*uint64)(unsafe.Pointer(&v)))
	default:
		panic("atomic: unsupported cell width")
	}
}

// CAS is a strong compare-and-swap: it never fails spuriously. success is
// the order to apply when the swap happens; failure is the order to apply
// to the load performed when it does not (failure must not be stronger
// than success and must not itself be Release or AcqRel, per spec.md §3.1
// — this is a caller contract, not separately enforced here, matching how
// the source leaves it to the programmer).
func (c *Cell[T]) CAS(expected, desired T, _, _ Order) bool {
	switch unsafe.Sizeof(c.v) {
	case 4:
		return atomic.CompareAndSwapUint32((*uint32)(unsafe.Pointer(&c.v)),
			*(*uint32)(unsafe.Pointer(&expected)), *(*uint32)(unsafe.Pointer(&desired)))
	case 8:
		return atomic.CompareAndSwapUint64((*uint64)(unsafe.Pointer(&c.v)),
			*(*uint64)(unsafe.Pointer(&expected)), *(*uint64)(unsafe.Pointer(&desired)))
	default:
		panic("atomic: unsupported cell width")
	}
}

// VCAS behaves like CAS but always returns the value observed at the
// moment the decision was made, whether or not the swap happened.
func (c *Cell[T]) VCAS(expected, desired T, success, failure Order) T {
	for {
		cur := c.Load(failure)
		if cur != expected {
			return cur
		}
		if c.CAS(expected, desired, success, failure) {
			return expected
		}
	}
}

// Exchange atomically stores v and returns the previous value.
func (c *Cell[T]) Exchange(v T, _ Order) T {
	switch unsafe.Sizeof(c.v) {
	case 4:
		r := atomic.SwapUint32((*uint32)(unsafe.Pointer(&c.v)), *(*uint32)(unsafe.Pointer(&v)))
		return *(*T)(unsafe.Pointer(&r))
	case 8:
		r := atomic.SwapUint64((*uint64)(unsafe.Pointer(&c.v)), *(*uint64)(unsafe.Pointer(&v)))
		return *(*T)(unsafe.Pointer(&r))
	default:
		panic("atomic: unsupported cell width")
	}
}

// Add performs a fetch-and-add and returns the PRIOR value, matching
// spec.md §4.1's "inc/dec/fetch_add are post-increment semantics".
func (c *Cell[T]) Add(delta T, _ Order) T {
	switch unsafe.Sizeof(c.v) {
	case 4:
		d := *(*uint32)(unsafe.Pointer(&delta))
		r := atomic.AddUint32((*uint32)(unsafe.Pointer(&c.v)), d) - d
		return *(*T)(unsafe.Pointer(&r))
	case 8:
		d := *(*uint64)(unsafe.Pointer(&delta))
		r := atomic.AddUint64((*uint64)(unsafe.Pointer(&c.v)), d) - d
		return *(*T)(unsafe.Pointer(&r))
	default:
		panic("atomic: unsupported cell width")
	}
}

// Inc is post-increment: returns the value before the increment.
func (c *Cell[T]) Inc(order Order) T { return c.Add(1, order) }

// Dec is post-decrement: returns the value before the decrement.
func (c *Cell[T]) Dec(order Order) T {
	var negOne T = ^T(0)
	return c.Add(negOne, order)
}

// And performs a fetch-and-bitwise-AND, returning the prior value.
func (c *Cell[T]) And(mask T, order Order) T {
	for {
		old := c.Load(order)
		if c.CAS(old, old&mask, order, order) {
			return old
		}
	}
}

// Or performs a fetch-and-bitwise-OR, returning the prior value.
func (c *Cell[T]) Or(mask T, order Order) T {
	for {
		old := c.Load(order)
		if c.CAS(old, old|mask, order, order) {
			return old
		}
	}
}

// Xor performs a fetch-and-bitwise-XOR, returning the prior value.
func (c *Cell[T]) Xor(mask T, order Order) T {
	for {
		old := c.Load(order)
		if c.CAS(old, old^mask, order, order) {
			return old
		}
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package backoff provides the spin-and-yield strategies consumed on
// contended CAS retries (spec.md §4.2). Every container retry loop
// constructs a fresh, zero-value Strategy at loop entry — matching the
// teacher package's "sw := spin.Wait{}" idiom — rather than sharing one
// instance across calls.
package backoff

import (
	"runtime"
	"sync/atomic"
)

// Strategy is a stateless-from-the-caller's-perspective callable invoked
// once per contended retry.
type Strategy interface {
	// Reset clears any accumulated backoff state.
	Reset()
	// Once executes one backoff step.
	Once()
}

// sink absorbs spin-loop writes so the compiler cannot prove the loop has
// no observable effect and eliminate it; atomic operations are defined to
// interact with other goroutines and are never eligible for that kind of
// dead-code removal.
var sink uint32

// Empty never waits. Useful for benchmarking the cost of backoff itself,
// or for algorithms that are already wait-free.
type Empty struct{}

func (Empty) Reset() {}
func (Empty) Once()  {}

// Yield cedes the processor to the Go scheduler on every call.
type Yield struct{}

func (Yield) Reset() {}
func (Yield) Once()  { runtime.Gosched() }

const spinCap = 1 << 10

// Exponential doubles a local spin bound up to a cap, then falls back to
// yielding. A value of Exponential must be reset at each retry-loop entry;
// it is not safe to share across logically independent retry loops.
type Exponential struct {
	spins int
}

func (e *Exponential) Reset() { e.spins = 0 }

func (e *Exponential) Once() {
	if e.spins >= spinCap {
		runtime.Gosched()
		return
	}
	if e.spins == 0 {
		e.spins = 1
	}
	for i := 0; i < e.spins; i++ {
		atomic.AddUint32(&sink, 1)
	}
	e.spins *= 2
}

const lockSpinBound = 64

// LockDefault is the composite strategy appropriate for spin-locks (spec.md
// §4.2): spin a small bounded number of times, then yield.
type LockDefault struct {
	spins int
}

func (l *LockDefault) Reset() { l.spins = 0 }

func (l *LockDefault) Once() {
	if l.spins < lockSpinBound {
		atomic.AddUint32(&sink, 1)
		l.spins++
		return
	}
	runtime.Gosched()
}

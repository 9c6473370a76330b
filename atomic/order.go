// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomic

// Order is the memory-ordering constraint carried by every atomic
// operation, weakest first.
type Order uint8

const (
	// Relaxed imposes no ordering beyond atomicity of the operation itself.
	Relaxed Order = iota
	// Consume is accepted for API completeness but treated as Acquire.
	// Go's memory model has no weaker-than-acquire "data dependent" ordering,
	// and the compiler-level distinction C++11 consume once offered was
	// abandoned by every major C++ compiler for the same reason.
	Consume
	// Acquire ensures no later memory access is reordered before this load.
	Acquire
	// Release ensures no earlier memory access is reordered after this store.
	Release
	// AcqRel combines Acquire and Release for read-modify-write operations.
	AcqRel
	// SeqCst additionally imposes a single total order across all SeqCst
	// operations. Go's sync/atomic operations are already sequentially
	// consistent, so this is never weaker than what Order asks for.
	SeqCst
)

// Fence issues a standalone memory fence. On most real targets Go's atomic
// operations already carry a full barrier, so a freestanding fence has
// nothing further to enforce; Fence exists for API parity with spec'd
// CORE behaviour (every ordering-sensitive algorithm in this module states
// its fences explicitly) and is a documented no-op.
func Fence(_ Order) {}

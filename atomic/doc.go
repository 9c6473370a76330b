// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package atomic provides memory-order-aware atomic primitives for the
// lock-free containers and SMR schemes in code.hybscloud.com/lfcore.
//
// Every operation accepts an explicit [Order] argument for API parity with
// the algorithms' published memory-ordering requirements. Go's sync/atomic
// package only ever provides sequentially consistent operations: there is
// no weaker mode to ask for. Accepting Order and then doing strictly
// sequentially-consistent work underneath is always sound — it can never
// under-synchronize relative to what the caller asked for, only
// over-deliver — so Cell, Tagged128 and Fence document the parameter as
// accepted-but-not-relaxed rather than silently dropping it.
package atomic

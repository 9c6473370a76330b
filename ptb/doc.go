// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ptb implements the Pass-the-Buck (PTB) safe memory reclamation
// scheme: per-thread guards with a post slot and a hand-off slot, a
// global retired-pointer buffer, and a liberate procedure that traps
// still-guarded retired nodes in a guard's hand-off rather than freeing
// them.
//
// Construct a process-wide singleton with [New]. A goroutine attaches via
// [GC.Attach] (or [GC.AttachCurrent]) to obtain a [ThreadGC], draws one or
// more [Guard] values from it, and retires nodes through [ThreadGC.Retire].
// Any thread that retires may end up running [ThreadGC.Liberate]; this is
// by design — liberate is wait-free per invocation and bounded by the
// global guard-pool size, so there is no single-reclaimer bottleneck.
package ptb

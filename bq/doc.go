// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bq provides FAA-based bounded queues built on the SCQ (Scalable
// Circular Queue, Nikolaev, DISC 2019) slot-validation scheme: MPMC, MPSC,
// SPMC, and a Lamport-ring SPSC.
//
// These are a supplementary bounded-queue family alongside [queue.TZQueue]:
// TZQueue follows the Tsigas-Zhang sentinel/parity design named by the
// container specification, while the queues here follow the FAA/cycle
// design this module's teacher codebase used for its own bounded queues.
// Both are lock-free bounded circular-array queues; callers pick whichever
// slot-validation family fits their allocation profile.
package bq

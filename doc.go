// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfcore is a lock-free concurrent data-structures library: safe
// memory reclamation (SMR) schemes plus the container algorithms built on
// top of them.
//
// # Layers
//
// The module is organized bottom-up, leaves first:
//
//	atomic    typed, memory-order-aware atomic cells, counters, tagged pointers
//	backoff   spin-and-yield retry strategies
//	hp        Hazard-Pointer SMR
//	ptb       Pass-the-Buck SMR
//	spinlock  TATAS spin-lock (debug/release split), reentrant variant
//	freelist  IBM-style tagged-pointer free-list
//	queue     MSQueue, MoirQueue, TaggedMSQueue, LMSQueue, TZQueue
//	list      MichaelList, LazyList (both implementing OrderedSet)
//	bq        supplementary FAA/SCQ-style bounded queues (MPMC/MPSC/SPMC/SPSC)
//
// Containers mutate shared links through [atomic.Cell], [atomic.Tagged128]
// or sync/atomic pointer operations. MSQueue, MoirQueue, LMSQueue and
// MichaelList retire removed nodes through an hp.GC; TaggedMSQueue
// recycles nodes through a freelist.List, and TZQueue and LazyList retire
// nothing and leave unlinked memory to Go's garbage collector. This package
// holds only the error taxonomy and interfaces shared across those layers;
// it does not itself implement a container.
//
// # Thread model
//
// The specification's "thread" is a goroutine here. Containers built on
// an hp.GC attach the calling goroutine themselves through
// hp.GC.AttachCurrent on its first operation; a goroutine should call
// DetachCurrent before it exits if it will never touch that container
// again. Attachment is idempotent per goroutine per GC.
//
// # Concurrency, not persistence
//
// There is no on-disk or wire format here, no CLI, no configuration file.
// The only interface is the programmatic Go API; see the package docs
// under queue/ and list/ for the container-level contracts.
package lfcore

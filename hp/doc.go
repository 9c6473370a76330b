// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hp implements Michael's Hazard-Pointer safe memory reclamation
// (SMR):
//
//	[2002] Maged M. Michael, "Safe memory reclamation for dynamic
//	lock-free objects using atomic reads and writes"
//	[2003] Maged M. Michael, "Hazard Pointers: Safe memory reclamation
//	for lock-free objects"
//
// A GC is a process-wide singleton constructed once with [New]. A
// goroutine using this package directly attaches via [GC.Attach] (or the
// memoizing convenience [GC.AttachCurrent]), obtaining a *ThreadGC, and
// should call [ThreadGC.Detach] when done, typically via defer. The
// containers built on a GC call [GC.AttachCurrent] themselves on every
// operation, so their callers need not attach first.
//
// A ThreadGC hands out up to the GC's configured hazard-slot quota via
// [ThreadGC.AcquireGuard]. A [Guard] publishes one protected pointer at a
// time; [Guard.ProtectLink] is the only safe idiom for acquiring a hazard
// on a pointer that a concurrent thread may retire between the load and
// the publish.
//
// # Thread identity
//
// The source keys a hazard-pointer record's ownership by OS thread id so
// a scan can tell a record abandoned by a dead thread from one still in
// use. Go has no supported way to observe goroutine death, so this port
// drops thread-id comparison entirely: a record's free flag is the only
// ownership signal, and [ThreadGC.HelpScan] reclaims retired entries left
// behind by any record it can claim via that flag — whether the previous
// owner detached cleanly or not. Each [ThreadGC] is instead a unique
// pointer handle; callers thread it explicitly (function parameter,
// struct field, or goroutine-local via [GC.AttachCurrent]) rather than
// the library resolving "the current thread" implicitly.
package hp

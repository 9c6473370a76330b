// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spinlock implements a TATAS (test-and-test-and-set) spin-lock,
// used by list.LazyList to guard a node's pred/cur pair during insert and
// erase.
//
// Build with -tags lfcore_debug to additionally record the owning
// goroutine and panic on non-reentrant re-lock, mirroring the teacher
// codebase's race.go/race_off.go build-tag split for optional diagnostic
// instrumentation.
package spinlock

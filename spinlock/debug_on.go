// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build lfcore_debug

package spinlock

import "code.hybscloud.com/lfcore/internal/gid"

// debugState records the owning goroutine while a Mutex is held, so a
// non-reentrant re-lock from the same goroutine panics instead of
// deadlocking silently. Diagnostic only: reads of owner outside the lock
// are best-effort, same caveat as internal/gid itself.
type debugState struct {
	owner string
}

func (d *debugState) checkReentrant() {
	if d.owner != "" && d.owner == gid.Current() {
		panic("spinlock: Mutex is not reentrant; already locked by this goroutine")
	}
}

func (d *debugState) acquired() {
	d.owner = gid.Current()
}

func (d *debugState) released() {
	d.owner = ""
}

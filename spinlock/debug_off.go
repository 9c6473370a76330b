// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !lfcore_debug

package spinlock

// debugState is a zero-cost no-op in release builds.
type debugState struct{}

func (d *debugState) checkReentrant() {}
func (d *debugState) acquired()       {}
func (d *debugState) released()      {}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomic

import "sync/atomic"

// BoolCell is an atomic boolean flag with explicit memory ordering, used
// throughout hp/ptb/queue for "free"/"draining"/"marked" style flags.
type BoolCell struct {
	v atomic.Bool
}

// NewBoolCell returns a BoolCell initialized to v.
func NewBoolCell(v bool) *BoolCell {
	c := &BoolCell{}
	c.v.Store(v)
	return c
}

func (c *BoolCell) Load(_ Order) bool            { return c.v.Load() }
func (c *BoolCell) Store(v bool, _ Order)        { c.v.Store(v) }
func (c *BoolCell) CAS(expected, desired bool) bool { return c.v.CompareAndSwap(expected, desired) }

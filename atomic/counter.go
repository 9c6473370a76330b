// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomic

// Sizer is the shared interface of Counter and NullCounter, letting a
// container be built with or without exact size tracking (spec.md §4.1:
// "a 'null' counter variant is available when exact size is not
// required").
type Sizer interface {
	Inc()
	Dec()
	Load() uint64
}

// Counter wraps an atomic size that supports Inc/Dec/Load with a
// configurable default order: Relaxed for pure statistics, stronger if
// the counter ever gates a control-flow decision.
type Counter struct {
	v     Cell[uint64]
	order Order
}

// NewCounter returns a Counter that performs all operations at order.
func NewCounter(order Order) *Counter {
	return &Counter{order: order}
}

func (c *Counter) Inc()         { c.v.Inc(c.order) }
func (c *Counter) Dec()         { c.v.Dec(c.order) }
func (c *Counter) Load() uint64 { return c.v.Load(c.order) }

// NullCounter satisfies Sizer while doing no work at all — for containers
// built where an approximate/absent size is acceptable (spec.md §6: "size()
// -> size_t (approximate when no counter is configured)").
type NullCounter struct{}

func (NullCounter) Inc()         {}
func (NullCounter) Dec()         {}
func (NullCounter) Load() uint64 { return 0 }

// EventCounter is a relaxed-only counter for internal statistics; it must
// never gate a control path (spec.md §4.1).
type EventCounter struct {
	v Cell[uint64]
}

func (c *EventCounter) Inc()         { c.v.Inc(Relaxed) }
func (c *EventCounter) Load() uint64 { return c.v.Load(Relaxed) }

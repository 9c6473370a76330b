// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue implements the unbounded and bounded lock-free FIFO
// containers: MSQueue (classical Michael-Scott, hazard-pointer protected),
// MoirQueue (a slack-tail variant of MSQueue), TaggedMSQueue (nodes
// recirculate through a freelist.List instead of the allocator, trading
// hazard-pointer protection for a tagged-pointer free-list), LMSQueue (the
// Ladan-Mozes-Shavit optimistic doubly-linked queue), and TZQueue (the
// Tsigas-Zhang bounded cyclic array queue, which needs no SMR at all since
// its slots are values in a fixed array rather than heap nodes).
//
// Every type here implements lfcore.Queue[T].
package queue

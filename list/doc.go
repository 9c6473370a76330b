// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package list implements the two sorted singly-linked set containers:
// MichaelList (mark-bit-on-next, hazard-pointer protected, physical unlink
// cooperative across concurrent Searches) and LazyList (optimistic search,
// per-node spinlock.Mutex validated mutation). Both implement
// lfcore.OrderedSet[K,V].
package list

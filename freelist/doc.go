// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package freelist implements an IBM-style tagged-pointer free-list: nodes
// Popped for reuse and Pushed back after use recirculate through a single
// atomic.Tagged128 head instead of returning to the Go allocator. The
// {ptr,tag} CAS closes the ABA window a bare pointer CAS would leave open
// on node reuse, which is what lets queue.TaggedMSQueue skip hazard-pointer
// protection on its own nodes entirely (the tag, not SMR, makes reuse
// safe).
package freelist

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfcore

import "errors"

// ErrPrecondition reports a fatal precondition violation: a container
// operation was issued by a goroutine that never attached to the SMR it
// depends on, or a hazard/guard budget was exhausted. Recovery is not
// expected — the caller's only correct response is to fix the call site.
var ErrPrecondition = errors.New("lfcore: precondition violated")

// ErrCapacityExceeded reports a recoverable failure on a bounded
// container: Enqueue failed because the queue is full. No side effect
// occurred.
var ErrCapacityExceeded = errors.New("lfcore: capacity exceeded")

// ErrNotFound reports a recoverable failure on an ordered container:
// Erase or Find was called with a key that is not present.
var ErrNotFound = errors.New("lfcore: not found")

// IsPrecondition reports whether err is (or wraps) ErrPrecondition.
func IsPrecondition(err error) bool { return errors.Is(err, ErrPrecondition) }

// IsCapacityExceeded reports whether err is (or wraps) ErrCapacityExceeded.
func IsCapacityExceeded(err error) bool { return errors.Is(err, ErrCapacityExceeded) }

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

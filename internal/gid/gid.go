// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gid extracts the runtime-assigned goroutine id, best-effort,
// for diagnostic and memoization use only (AttachCurrent-style
// convenience lookups, debug-build lock-ownership tracking). The Go
// runtime does not guarantee the format parsed here across versions; code
// that needs a stable identity should not depend on it.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Current returns the calling goroutine's runtime id as a string.
func Current() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if bytes.HasPrefix(b, []byte(prefix)) {
		b = b[len(prefix):]
		if i := bytes.IndexByte(b, ' '); i >= 0 {
			return string(b[:i])
		}
	}
	return strconv.Itoa(runtime.NumGoroutine())
}

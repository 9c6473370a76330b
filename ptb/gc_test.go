// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ptb

import (
	"testing"
	"unsafe"
)

func TestLiberateHandoffTrapsGuardedNode(t *testing.T) {
	gc := New(WithLiberateThreshold(1000000)) // never auto-liberate; drive it by hand

	a := gc.Attach()
	ga := a.AcquireGuard()

	var x int
	p := unsafe.Pointer(&x)
	ga.Set(p)

	freed := false
	b := gc.Attach()
	b.Retire(p, func(unsafe.Pointer) { freed = true })
	b.flush()
	b.Liberate()

	if freed {
		t.Fatalf("Liberate freed a node a live guard still names")
	}

	ga.Release() // clears post; node remains trapped in ga's hand-off
	b.Liberate()

	if !freed {
		t.Fatalf("a second Liberate after the guard released should free the trapped node")
	}
}

func TestLiberateFreesUnguardedNode(t *testing.T) {
	gc := New()
	a := gc.Attach()

	freed := false
	var x int
	a.Retire(unsafe.Pointer(&x), func(unsafe.Pointer) { freed = true })
	a.flush()
	a.Liberate()

	if !freed {
		t.Fatalf("Liberate should free a retired node no guard names")
	}
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "testing"

func TestEncodeDecodeWord(t *testing.T) {
	for _, tc := range []struct {
		size      int
		allocated bool
	}{
		{32, false},
		{32, true},
		{65536, false},
		{65536, true},
		{MinBlockSize, true},
	} {
		w := encodeWord(tc.size, tc.allocated)
		size, allocated := decodeWord(w)
		if size != tc.size || allocated != tc.allocated {
			t.Fatalf("encodeWord(%d, %t) round-trip got (%d, %t)", tc.size, tc.allocated, size, allocated)
		}
	}
}

func TestAdjustedSize(t *testing.T) {
	for _, tc := range []struct{ u, want int }{
		{1, MinBlockSize},
		{16, 32},  // align8(16+16) = 32
		{17, 40},  // align8(17+16) = align8(33) = 40
		{200, 216}, // align8(200+16) = 216
		{4000, 4016},
	} {
		if got := adjustedSize(tc.u); got != tc.want {
			t.Fatalf("adjustedSize(%d) = %d, want %d", tc.u, got, tc.want)
		}
	}
}

func TestNextPrevBlockRoundTrip(t *testing.T) {
	a := newPAllocator(t).Allocator

	first := prologueOff + wordSize
	size, _ := a.header(first)
	next := a.nextBlock(first)
	if next != first+size {
		t.Fatalf("nextBlock = %#x, want %#x", next, first+size)
	}

	// prevBlock of the block following the first real block must land
	// back on the first real block.
	back := a.prevBlock(next)
	if back != first {
		t.Fatalf("prevBlock(nextBlock(first)) = %#x, want %#x", back, first)
	}
}

func TestFooterMatchesHeaderAfterWriteBlockTags(t *testing.T) {
	a := newPAllocator(t).Allocator
	off := prologueOff + wordSize
	a.writeBlockTags(off, 128, true)

	size, allocated := a.header(off)
	fsize, fallocated := a.footer(off, size)
	if size != 128 || !allocated || fsize != size || fallocated != allocated {
		t.Fatalf("header/footer mismatch: header=(%d,%t) footer=(%d,%t)", size, allocated, fsize, fallocated)
	}
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "testing"

func TestSizeClass(t *testing.T) {
	for _, tc := range []struct{ s, want int }{
		{32, 0},
		{63, 0},
		{64, 1},
		{96, 1},
		{128, 2},
		{4096, 7},
		{65536, 10},
		{1 << 30, 10}, // clamped at NumClasses-1
	} {
		if got := sizeClass(tc.s); got != tc.want {
			t.Fatalf("sizeClass(%d) = %d, want %d", tc.s, got, tc.want)
		}
	}
}

func TestSizeClassPanicsBelowMinBlockSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("sizeClass(16) did not panic")
		}
	}()
	sizeClass(16)
}

// TestPushPopLIFO exercises push/pop's four unlink cases directly: sole
// element, head-of-several, tail-of-several, and middle-of-several.
func TestPushPopLIFO(t *testing.T) {
	a := newPAllocator(t).Allocator
	k := 0
	base := prologueOff + wordSize

	// Lay out three adjacent same-class free blocks by hand.
	blocks := []int{base, base + 64, base + 128}
	for _, off := range blocks {
		a.writeBlockTags(off, 64, false)
	}

	// Sole element.
	a.push(blocks[0], k)
	if a.classHead(k) != blocks[0] {
		t.Fatalf("classHead after single push = %#x, want %#x", a.classHead(k), blocks[0])
	}
	a.pop(blocks[0], k)
	if a.classHead(k) != 0 {
		t.Fatalf("classHead after popping sole element = %#x, want 0", a.classHead(k))
	}

	// LIFO order: push 0,1,2 -> head should be 2, then 1, then 0.
	for _, off := range blocks {
		a.push(off, k)
	}
	if got := a.classHead(k); got != blocks[2] {
		t.Fatalf("classHead after three pushes = %#x, want %#x (LIFO)", got, blocks[2])
	}

	// Pop the middle element (blocks[1]) while head (blocks[2]) and tail
	// (blocks[0]) remain linked correctly.
	a.pop(blocks[1], k)
	if next := a.freeLinkNext(blocks[2]); next != blocks[0] {
		t.Fatalf("after popping middle, head.next = %#x, want %#x", next, blocks[0])
	}
	if prev := a.freeLinkPrev(blocks[0]); prev != blocks[2] {
		t.Fatalf("after popping middle, tail.prev = %#x, want %#x", prev, blocks[2])
	}

	// Pop the head (blocks[2]): new head must be blocks[0], with prev == 0.
	a.pop(blocks[2], k)
	if got := a.classHead(k); got != blocks[0] {
		t.Fatalf("classHead after popping head = %#x, want %#x", got, blocks[0])
	}
	if prev := a.freeLinkPrev(blocks[0]); prev != 0 {
		t.Fatalf("new head.prev = %#x, want 0", prev)
	}

	// Pop the tail: push blocks[1] in front of blocks[0], then remove
	// blocks[0], leaving blocks[1] as the only member with no next link.
	a.push(blocks[1], k)
	a.pop(blocks[0], k)
	if got := a.classHead(k); got != blocks[1] {
		t.Fatalf("classHead after popping tail = %#x, want %#x", got, blocks[1])
	}
	if next := a.freeLinkNext(blocks[1]); next != 0 {
		t.Fatalf("after popping tail, head.next = %#x, want 0", next)
	}

	// Pop the last remaining element.
	a.pop(blocks[1], k)
	if a.classHead(k) != 0 {
		t.Fatalf("classHead after draining list = %#x, want 0", a.classHead(k))
	}
}

func TestFirstFitAdvancesClasses(t *testing.T) {
	a := newPAllocator(t).Allocator

	// The fresh heap has exactly one free block, of ChunkSize, in the
	// largest class. A request far smaller than ChunkSize but with no
	// block in its own (empty) class must still find it by advancing.
	off := a.firstFit(4016)
	if off == 0 {
		t.Fatal("firstFit(4016) found nothing in a freshly initialized heap")
	}
	size, allocated := a.header(off)
	if allocated || size < 4016 {
		t.Fatalf("firstFit returned unsuitable block: size=%d allocated=%t", size, allocated)
	}
}

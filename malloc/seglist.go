// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"encoding/binary"
	"math/bits"
)

// Segregated free lists (spec.md §4.2). The list-head array lives in the
// first NumClasses*wordSize bytes of the arena; class k's head is an 8-byte
// offset word, 0 meaning "empty", mirroring the way lldb's flt type keeps
// one handle-sized head per size-class slot at the front of the Filer.

const headArraySize = NumClasses * wordSize

func (a *Allocator) classHead(k int) int {
	return a.readHeadWord(k * wordSize)
}

func (a *Allocator) setClassHead(k, off int) {
	a.writeHeadWord(k*wordSize, off)
}

func (a *Allocator) readHeadWord(byteOff int) int {
	return int(int64(binary.LittleEndian.Uint64(a.arena[byteOff : byteOff+wordSize])))
}

func (a *Allocator) writeHeadWord(byteOff, off int) {
	binary.LittleEndian.PutUint64(a.arena[byteOff:byteOff+wordSize], uint64(int64(off)))
}

// sizeClass computes class(s) = min(NumClasses-1, floor(log2 s) - classBias),
// clamped at 0 below. s must be >= MinBlockSize (invariant); the rewrite
// asserts the precondition the original design only assumed, per spec.md §9.
func sizeClass(s int) int {
	if s < MinBlockSize {
		panic("malloc: sizeClass called on block smaller than MinBlockSize")
	}
	log2 := bits.Len(uint(s)) - 1
	k := log2 - classBias
	if k < 0 {
		k = 0
	}
	if k > NumClasses-1 {
		k = NumClasses - 1
	}
	return k
}

// push inserts the free block at off at the head of class k's list (LIFO).
// Requires off not currently a member of any list.
func (a *Allocator) push(off, k int) {
	head := a.classHead(k)
	a.setFreeLinkNext(off, head)
	a.setFreeLinkPrev(off, 0)
	if head != 0 {
		a.setFreeLinkPrev(head, off)
	}
	a.setClassHead(k, off)
}

// pop removes the free block at off from class k's list, given its in-band
// prev/next links. Requires off to be a member of list k. Four cases: sole
// element, first element, last element, middle element.
func (a *Allocator) pop(off, k int) {
	prev := a.freeLinkPrev(off)
	next := a.freeLinkNext(off)
	switch {
	case prev == 0 && next == 0:
		a.setClassHead(k, 0)
	case prev == 0 && next != 0:
		a.setFreeLinkPrev(next, 0)
		a.setClassHead(k, next)
	case prev != 0 && next == 0:
		a.setFreeLinkNext(prev, 0)
	default:
		a.setFreeLinkNext(prev, next)
		a.setFreeLinkPrev(next, prev)
	}
}

// firstFit starts at class(s) and walks each list's LIFO chain for the
// first block with size >= s; on a miss it advances to the next class. No
// best-fit, no rotation. Returns 0 if no block is found.
func (a *Allocator) firstFit(s int) int {
	for k := sizeClass(s); k < NumClasses; k++ {
		for off := a.classHead(k); off != 0; off = a.freeLinkNext(off) {
			size, _ := a.header(off)
			if size >= s {
				return off
			}
		}
	}
	return 0
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "encoding/binary"

// Block layout & boundary tags (spec.md §4.1). Pure address arithmetic over
// a.arena; no state beyond the arena itself. Blocks are addressed as byte
// offsets from the start of the arena rather than as real pointers, because
// the arena can be reallocated by the Extender between calls — the same
// reason lldb addresses blocks as int64 handles into a Filer rather than as
// memory addresses.

// encodeWord packs a block size and allocated bit into the low 32 bits of a
// header/footer word. size is always a multiple of 8 (Align), so its low 3
// bits are free; the allocated bit is stashed in bit 0. The high 32 bits of
// the 8-byte word are reserved padding and always written as zero.
func encodeWord(size int, allocated bool) uint32 {
	w := uint32(size)
	if allocated {
		w |= 1
	}
	return w
}

func decodeWord(w uint32) (size int, allocated bool) {
	return int(w &^ 1), w&1 != 0
}

func (a *Allocator) writeWord(off int, size int, allocated bool) {
	binary.LittleEndian.PutUint64(a.arena[off:off+wordSize], uint64(encodeWord(size, allocated)))
}

func (a *Allocator) readWord(off int) (size int, allocated bool) {
	w := binary.LittleEndian.Uint64(a.arena[off : off+wordSize])
	return decodeWord(uint32(w))
}

// header returns the size and allocated bit of the block starting at off.
func (a *Allocator) header(off int) (size int, allocated bool) {
	return a.readWord(off)
}

// footerOf returns the byte offset of the footer of the block at off, given
// its size (spec.md: address(b) + size(b) - footer_size).
func footerOf(off, size int) int {
	return off + size - wordSize
}

// footer returns the size and allocated bit recorded in the footer of the
// block at off (whose size is already known).
func (a *Allocator) footer(off, size int) (fsize int, fallocated bool) {
	return a.readWord(footerOf(off, size))
}

// writeBlockTags writes matching header and footer for a block of the given
// size and allocated bit. Writing both is a single call so no observer ever
// sees a block with a header/footer disagreement (spec.md §4.1: "no other
// observer").
func (a *Allocator) writeBlockTags(off, size int, allocated bool) {
	a.writeWord(off, size, allocated)
	a.writeWord(footerOf(off, size), size, allocated)
}

// writeSentinelHeader writes a one-word sentinel (prologue or epilogue):
// just a header, no footer of its own — its single word is read as a
// footer by the neighboring real block's prevBlock/nextBlock walk.
func (a *Allocator) writeSentinelHeader(off, size int) {
	a.writeWord(off, size, true)
}

// nextBlock returns the offset of the block immediately following the block
// at off (valid for any non-epilogue block).
func (a *Allocator) nextBlock(off int) int {
	size, _ := a.header(off)
	return off + size
}

// prevBlock returns the offset of the block immediately preceding the block
// at off, by reading the footer word just before off and subtracting its
// size (valid for any non-prologue block). Correctness depends on the
// invariant that allocated blocks maintain truthful footers.
func (a *Allocator) prevBlock(off int) int {
	size, _ := a.readWord(off - wordSize)
	return off - size
}

// freeLinkNext and freeLinkPrev read/write the in-band doubly-linked free
// list pointers carried in the first two 8-byte payload slots of a free
// block. 0 means "no link".
func (a *Allocator) freeLinkNext(off int) int {
	return int(int64(binary.LittleEndian.Uint64(a.arena[off+wordSize : off+2*wordSize])))
}

func (a *Allocator) setFreeLinkNext(off, next int) {
	binary.LittleEndian.PutUint64(a.arena[off+wordSize:off+2*wordSize], uint64(int64(next)))
}

func (a *Allocator) freeLinkPrev(off int) int {
	return int(int64(binary.LittleEndian.Uint64(a.arena[off+2*wordSize : off+3*wordSize])))
}

func (a *Allocator) setFreeLinkPrev(off, prev int) {
	binary.LittleEndian.PutUint64(a.arena[off+2*wordSize:off+3*wordSize], uint64(int64(prev)))
}

// align8 rounds n up to the next multiple of Align.
func align8(n int) int {
	return (n + Align - 1) &^ (Align - 1)
}

// adjustedSize computes the block size (asize) required to hold a u-byte
// client payload, per spec.md §4.4: align8(u + Overhead), raised to at
// least MinBlockSize.
func adjustedSize(u int) int {
	asize := align8(u + Overhead)
	if asize < MinBlockSize {
		asize = MinBlockSize
	}
	return asize
}

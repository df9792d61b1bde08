// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "github.com/cznic/mathutil"

// Allocator is the policy layer (spec.md §4.4): the public Alloc / Free /
// Realloc operations, size adjustment, placement-with-split, and heap
// growth including the small-request fast path. An Allocator is a
// singleton-per-heap value, constructed by New — the same "model as a
// singleton allocator instance whose construction is init" choice spec.md
// §9 recommends. It is not safe for concurrent use: confine a given
// Allocator to one goroutine, the same contract lldb documents for Filer.
type Allocator struct {
	ext      Extender
	arena    []byte
	epilogue int // byte offset of the current epilogue header
}

// prologueOff is fixed for the lifetime of an Allocator: the head array
// occupies [0, headArraySize), and the one-word prologue sentinel sits
// immediately after it.
const prologueOff = headArraySize

// New grows a fresh arena from ext and initializes it to the canonical
// post-init layout of spec.md §6: head array, prologue, one free block of
// ChunkSize total bytes (the sole member of the largest class), epilogue.
func New(ext Extender) (*Allocator, error) {
	if ext.Size() != 0 {
		return nil, &ErrInvalid{"New", "extender must be empty"}
	}

	total := headArraySize + wordSize + ChunkSize + wordSize
	if _, err := ext.Extend(total); err != nil {
		return nil, &ErrOOM{total}
	}

	a := &Allocator{ext: ext, arena: ext.Bytes()}
	a.writeSentinelHeader(prologueOff, wordSize)

	freeOff := prologueOff + wordSize
	a.writeBlockTags(freeOff, ChunkSize, false)
	a.epilogue = freeOff + ChunkSize
	a.writeSentinelHeader(a.epilogue, 0)
	a.push(freeOff, sizeClass(ChunkSize))

	return a, nil
}

// extend grows the heap by nWords 8-byte words via the Extender,
// reinterprets the former epilogue as the header of a fresh free block,
// writes its footer, writes a new epilogue one word beyond, pushes the
// fresh block onto its class list, and — always, per the redesign adopted
// in SPEC_FULL.md §4.3 — coalesces it with a free left neighbor. Returns
// the (possibly coalesced) block's offset.
func (a *Allocator) extend(nWords int) (int, error) {
	nBytes := nWords * wordSize
	if _, err := a.ext.Extend(nBytes); err != nil {
		return 0, &ErrOOM{nBytes}
	}
	a.arena = a.ext.Bytes()

	freeOff := a.epilogue
	a.writeBlockTags(freeOff, nBytes, false)
	a.epilogue = freeOff + nBytes
	a.writeSentinelHeader(a.epilogue, 0)
	a.push(freeOff, sizeClass(nBytes))

	return a.coalesce(freeOff), nil
}

// Alloc implements spec.md §4.4's Allocation algorithm.
func (a *Allocator) Alloc(u int) (Handle, error) {
	if u < 0 {
		return 0, &ErrInvalid{"Alloc", u}
	}
	if u == 0 {
		return 0, nil
	}

	asize := adjustedSize(u)

	if asize <= SmallRequestThreshold {
		off, err := a.extend(asize / wordSize)
		if err != nil {
			return 0, err
		}
		return a.place(off, asize), nil
	}

	if off := a.firstFit(asize); off != 0 {
		return a.place(off, asize), nil
	}

	grow := mathutil.Max(asize, ChunkSize)
	off, err := a.extend(grow / wordSize)
	if err != nil {
		return 0, err
	}
	return a.place(off, asize), nil
}

// place carves asize bytes out of the free block at off (already known to
// have size >= asize) and marks the carved block allocated, splitting off a
// residual free block unless doing so would leave a splinter smaller than
// MinBlockSize.
func (a *Allocator) place(off, asize int) Handle {
	size, _ := a.header(off)
	a.pop(off, sizeClass(size))

	if r := size - asize; r >= MinBlockSize {
		a.writeBlockTags(off, asize, true)
		residual := off + asize
		a.writeBlockTags(residual, r, false)
		a.push(residual, sizeClass(r))
	} else {
		a.writeBlockTags(off, size, true)
	}

	return Handle(off + wordSize)
}

// blockOff recovers a block's header offset from a client handle, validating
// that the handle falls within the managed region.
func (a *Allocator) blockOff(h Handle) (int, error) {
	off := int(h) - wordSize
	if off < prologueOff+wordSize || off >= a.epilogue {
		return 0, &ErrInvalid{"handle out of range", h}
	}
	return off, nil
}

// Free implements spec.md §4.4's Free algorithm: locate the header, clear
// the allocated bit on header and footer, push onto class(size), coalesce.
func (a *Allocator) Free(h Handle) error {
	if !h.Valid() {
		return &ErrInvalid{"Free", h}
	}
	off, err := a.blockOff(h)
	if err != nil {
		return err
	}

	size, allocated := a.header(off)
	if !allocated {
		return &ErrInvalid{"Free: block is not allocated", h}
	}

	a.writeBlockTags(off, size, false)
	a.push(off, sizeClass(size))
	a.coalesce(off)
	return nil
}

// Realloc implements spec.md §4.4's Reallocate algorithm. A null h behaves
// like Alloc(u), matching the conventional realloc(NULL, u) extension. On
// allocation failure Realloc panics with an *ErrOOM — spec.md §7 treats
// this as fatal, since the caller cannot easily recover while the old
// block is still live.
func (a *Allocator) Realloc(h Handle, u int) Handle {
	if !h.Valid() {
		nh, err := a.Alloc(u)
		if err != nil {
			panic(err)
		}
		return nh
	}

	off, err := a.blockOff(h)
	if err != nil {
		panic(err)
	}
	oldSize, allocated := a.header(off)
	if !allocated {
		panic(&ErrInvalid{"Realloc: block is not allocated", h})
	}
	oldPayload := oldSize - Overhead

	nh, err := a.Alloc(u)
	if err != nil {
		panic(err)
	}

	n := mathutil.Min(oldPayload, u)
	if n > 0 {
		copy(a.Payload(nh)[:n], a.arena[int(h):int(h)+n])
	}
	if err := a.Free(h); err != nil {
		panic(err)
	}
	return nh
}

// Payload returns the writable client-visible bytes of the block referred
// to by h. The slice is a view into the arena as of this call; it must be
// re-obtained after any subsequent call that may grow the arena (Alloc,
// Realloc), since the Extender may relocate the backing array.
func (a *Allocator) Payload(h Handle) []byte {
	off := int(h) - wordSize
	size, _ := a.header(off)
	return a.arena[int(h) : off+size-wordSize]
}

// HeapSize reports the number of bytes currently under management between
// the prologue and the epilogue, for clients (such as a trace driver) that
// want to compute utilization without reaching into allocator internals.
func (a *Allocator) HeapSize() int {
	return a.epilogue + wordSize - prologueOff
}

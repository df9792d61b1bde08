// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "fmt"

// ErrInvalid reports invalid client usage detected cheaply in the hot path
// (e.g. a handle that could never have come from Alloc). It mirrors lldb's
// ErrINVAL: a small struct carrying the offending operation and value rather
// than a bare string.
type ErrInvalid struct {
	Op  string
	Arg interface{}
}

func (e *ErrInvalid) Error() string {
	return fmt.Sprintf("malloc: invalid argument in %s: %v", e.Op, e.Arg)
}

// ErrOOM reports that the extender refused to grow the arena. Alloc returns
// it; Realloc instead panics with it (spec.md §7: realloc OOM is fatal by
// design, since its caller cannot easily keep the old block alive and
// recover).
type ErrOOM struct {
	Requested int
}

func (e *ErrOOM) Error() string {
	return fmt.Sprintf("malloc: out of memory: extender refused to grow by %d bytes", e.Requested)
}

// corruptKind enumerates the ways CheckHeap can find the heap inconsistent.
// Modeled on lldb's ErrILSEQ.Type enum (ErrExpFreeTag, ErrHead, ErrSmall...).
type corruptKind int

const (
	corruptFooterMismatch corruptKind = iota
	corruptBadAlignment
	corruptBadPrologue
	corruptBadEpilogue
	corruptListMembership
	corruptAdjacentFree
	corruptListLinkage
	corruptSizeSum
	corruptSizeTooSmall
)

var corruptText = map[corruptKind]string{
	corruptFooterMismatch: "header/footer mismatch",
	corruptBadAlignment:   "payload not 8-byte aligned",
	corruptBadPrologue:    "prologue sentinel corrupt",
	corruptBadEpilogue:    "epilogue sentinel corrupt",
	corruptListMembership: "free block not in its size-class list (or vice versa)",
	corruptAdjacentFree:   "two adjacent free blocks were not coalesced",
	corruptListLinkage:    "free list prev/next links inconsistent",
	corruptSizeSum:        "sum of block sizes does not equal heap size",
	corruptSizeTooSmall:   "block smaller than MinBlockSize",
}

// ErrCorrupt reports an internal consistency failure found by CheckHeap. It
// does not abort the process; the caller decides what to do with it, exactly
// as spec.md §7 requires ("checkheap reports via diagnostic text; it does
// not abort").
type ErrCorrupt struct {
	Kind corruptKind
	Off  int // byte offset of the offending block, if applicable
	Arg  int64
	Arg2 int64
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("malloc: heap corrupt at offset %#x: %s (arg=%d arg2=%d)",
		e.Off, corruptText[e.Kind], e.Arg, e.Arg2)
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"fmt"
	"os"
)

// CheckHeap walks the managed region and verifies the Testable Properties of
// spec.md §8 (1–7). It reports the first violation found via a returned
// error; it never aborts the process, matching spec.md §7's "checkheap
// reports via diagnostic text; it does not abort". When verbose is true,
// CheckHeap also prints a one-line summary of each block to stderr; callers
// that want captured output should use CheckHeapTo.
func (a *Allocator) CheckHeap(verbose bool) error {
	return a.checkHeap(verbose, os.Stderr)
}

// CheckHeapTo behaves like CheckHeap but writes verbose diagnostics to w
// instead of stderr (useful for tests that want to capture or suppress
// them).
func (a *Allocator) CheckHeapTo(verbose bool, w interface{ Write([]byte) (int, error) }) error {
	return a.checkHeap(verbose, w)
}

func (a *Allocator) checkHeap(verbose bool, w interface{ Write([]byte) (int, error) }) error {
	logf := func(format string, args ...interface{}) {
		if !verbose || w == nil {
			return
		}
		fmt.Fprintf(w, format, args...)
	}

	// Property 3 (prologue): allocated, size == wordSize.
	pSize, pAlloc := a.header(prologueOff)
	if pSize != wordSize || !pAlloc {
		return &ErrCorrupt{Kind: corruptBadPrologue, Off: prologueOff, Arg: int64(pSize)}
	}

	inList := make(map[int]int) // offset -> class it claims to be in

	off := prologueOff + wordSize
	sizeSum := headArraySize + pSize
	for off < a.epilogue {
		size, allocated := a.header(off)
		logf("block off=%#x size=%d allocated=%t\n", off, size, allocated)

		if size < MinBlockSize {
			return &ErrCorrupt{Kind: corruptSizeTooSmall, Off: off, Arg: int64(size)}
		}
		if off%Align != 0 {
			return &ErrCorrupt{Kind: corruptBadAlignment, Off: off}
		}

		// Property 1: footer matches header.
		fSize, fAlloc := a.footer(off, size)
		if fSize != size || fAlloc != allocated {
			return &ErrCorrupt{Kind: corruptFooterMismatch, Off: off, Arg: int64(fSize), Arg2: int64(size)}
		}

		if !allocated {
			k := sizeClass(size)
			inList[off] = k

			next := off + size
			if next < a.epilogue {
				_, nAlloc := a.header(next)
				if !nAlloc {
					// Property 5: no two adjacent free blocks.
					return &ErrCorrupt{Kind: corruptAdjacentFree, Off: off}
				}
			}
		}

		sizeSum += size
		off += size
	}

	// Property 3: epilogue allocated, size == 0, and the walk landed
	// exactly on it.
	if off != a.epilogue {
		return &ErrCorrupt{Kind: corruptBadEpilogue, Off: off}
	}
	eSize, eAlloc := a.header(a.epilogue)
	if eSize != 0 || !eAlloc {
		return &ErrCorrupt{Kind: corruptBadEpilogue, Off: a.epilogue, Arg: int64(eSize)}
	}
	// The epilogue's recorded size is 0 (it marks the end of the walk),
	// but it still physically occupies one word; account for that word
	// here so the byte accounting below balances exactly.
	sizeSum += wordSize

	// Property 7: sum of all block sizes (including sentinels) equals
	// the current heap size minus the seglist-head array.
	total := a.epilogue + wordSize - headArraySize
	if sizeSum-headArraySize != total {
		return &ErrCorrupt{Kind: corruptSizeSum, Arg: int64(sizeSum - headArraySize), Arg2: int64(total)}
	}

	// Properties 4 and 6: every free list is well-formed, every member
	// is in the class matching its size, and every free block found by
	// the forward walk is accounted for in exactly one list.
	seen := make(map[int]bool, len(inList))
	for k := 0; k < NumClasses; k++ {
		prevOff := 0
		for n := a.classHead(k); n != 0; n = a.freeLinkNext(n) {
			if seen[n] {
				return &ErrCorrupt{Kind: corruptListLinkage, Off: n, Arg: int64(k)}
			}
			seen[n] = true

			if a.freeLinkPrev(n) != prevOff {
				return &ErrCorrupt{Kind: corruptListLinkage, Off: n, Arg: int64(k)}
			}
			size, allocated := a.header(n)
			if allocated {
				return &ErrCorrupt{Kind: corruptListMembership, Off: n, Arg: int64(k)}
			}
			if sizeClass(size) != k {
				return &ErrCorrupt{Kind: corruptListMembership, Off: n, Arg: int64(k), Arg2: int64(sizeClass(size))}
			}
			if gotK, ok := inList[n]; !ok || gotK != k {
				return &ErrCorrupt{Kind: corruptListMembership, Off: n, Arg: int64(k)}
			}

			prevOff = n
		}
	}
	if len(seen) != len(inList) {
		return &ErrCorrupt{Kind: corruptListMembership, Arg: int64(len(inList)), Arg2: int64(len(seen))}
	}

	return nil
}

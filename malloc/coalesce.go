// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// Coalescing engine (spec.md §4.3). Given a free block b already pushed
// onto its class list, coalesce merges it with up to two free neighbors and
// returns the offset of the surviving block (which may be a neighbor, not
// b, in cases 3 and 4 — mirroring lldb's free2, whose four-way switch over
// (latoms == 0, ratoms == 0) is the direct model for the case table below).
func (a *Allocator) coalesce(off int) int {
	size, _ := a.header(off)
	prevOff := a.prevBlock(off)
	nextOff := a.nextBlock(off)
	_, pAlloc := a.header(prevOff)
	_, nAlloc := a.header(nextOff)

	switch {
	case pAlloc && nAlloc:
		// Case 1: no-op.
		return off
	case pAlloc && !nAlloc:
		// Case 2: merge with next.
		nSize, _ := a.header(nextOff)
		a.pop(off, sizeClass(size))
		a.pop(nextOff, sizeClass(nSize))
		merged := size + nSize
		a.writeBlockTags(off, merged, false)
		a.push(off, sizeClass(merged))
		return off
	case !pAlloc && nAlloc:
		// Case 3: merge with previous; previous survives.
		pSize, _ := a.header(prevOff)
		a.pop(off, sizeClass(size))
		a.pop(prevOff, sizeClass(pSize))
		merged := pSize + size
		a.writeBlockTags(prevOff, merged, false)
		a.push(prevOff, sizeClass(merged))
		return prevOff
	default:
		// Case 4: merge with both; previous survives.
		pSize, _ := a.header(prevOff)
		nSize, _ := a.header(nextOff)
		a.pop(prevOff, sizeClass(pSize))
		a.pop(off, sizeClass(size))
		a.pop(nextOff, sizeClass(nSize))
		merged := pSize + size + nSize
		a.writeBlockTags(prevOff, merged, false)
		a.push(prevOff, sizeClass(merged))
		return prevOff
	}
}

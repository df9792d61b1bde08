// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// Tuning constants, fixed by design (spec.md §6).
const (
	// wordSize is the size in bytes of a header or footer word.
	wordSize = 8

	// Align is the payload alignment, in bytes.
	Align = 8

	// Overhead is the combined size of a block's header and footer.
	Overhead = 2 * wordSize

	// MinBlockSize is the smallest legal block size: header + footer +
	// two 8-byte free-list link slots.
	MinBlockSize = 32

	// NumClasses is the number of segregated free-list size classes (C).
	NumClasses = 11

	// classBias is the log2 offset subtracted when computing a size
	// class; class(s) = min(NumClasses-1, floor(log2 s) - classBias).
	classBias = 5

	// SmallRequestThreshold is the largest adjusted block size (asize)
	// eligible for the small-request fast path.
	SmallRequestThreshold = 96

	// ChunkSize is the default number of bytes requested from the
	// extender when growing the heap on an allocation miss.
	ChunkSize = 65536
)

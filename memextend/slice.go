// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memextend provides concrete implementations of malloc.Extender,
// the external heap-extender collaborator malloc.Allocator consumes but
// never implements. Slice is an in-process, growable-[]byte extender, the
// functional analog of lldb's MemFiler: a memory-only backing store used by
// the allocator's own test suite and as the default runtime extender.
package memextend

import (
	"fmt"

	"github.com/cznic/mathutil"
)

// ErrInvalid reports a bad argument to an Extend call.
type ErrInvalid struct {
	Arg int
}

func (e *ErrInvalid) Error() string {
	return fmt.Sprintf("memextend: invalid extend amount %d", e.Arg)
}

// ErrCapped reports that a Slice refused to grow past its configured cap.
type ErrCapped struct {
	Requested, Limit int
}

func (e *ErrCapped) Error() string {
	return fmt.Sprintf("memextend: grow to %d bytes exceeds cap %d", e.Requested, e.Limit)
}

// Slice backs a managed region with a single growable []byte. Growth that
// fits within the current backing array's capacity reslices in place;
// growth beyond capacity allocates a fresh, larger backing array (doubling,
// the same amortized-growth trade-off lldb's MemFiler makes by paging
// rather than ever moving existing bytes where it can avoid it) and copies
// the old content across.
type Slice struct {
	buf   []byte
	limit int // 0 means unlimited
}

// NewSlice returns an empty Slice extender with no growth limit.
func NewSlice() *Slice {
	return &Slice{}
}

// NewSliceLimit returns an empty Slice extender that fails Extend once the
// region would exceed limit bytes, simulating an out-of-memory extender for
// tests that exercise malloc's OOM paths.
func NewSliceLimit(limit int) *Slice {
	return &Slice{limit: limit}
}

// Size implements malloc.Extender.
func (s *Slice) Size() int { return len(s.buf) }

// Bytes implements malloc.Extender.
func (s *Slice) Bytes() []byte { return s.buf }

// Extend implements malloc.Extender.
func (s *Slice) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, &ErrInvalid{n}
	}

	base := len(s.buf)
	newLen := base + n
	if s.limit != 0 && newLen > s.limit {
		return 0, &ErrCapped{newLen, s.limit}
	}

	if newLen <= cap(s.buf) {
		s.buf = s.buf[:newLen]
		return base, nil
	}

	newCap := mathutil.Max(2*cap(s.buf), newLen)
	grown := make([]byte, newLen, newCap)
	copy(grown, s.buf)
	s.buf = grown
	return base, nil
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"fmt"
	"testing"

	"github.com/maxgonick/malloclab/memextend"
)

// pAllocator is a paranoid Allocator wrapper for tests, modeled on lldb's
// pAllocator in falloc_test.go: every call is automatically followed by a
// consistency check, and the test fails immediately on the first violation
// rather than accumulating silent corruption across many operations.
type pAllocator struct {
	*Allocator
	t *testing.T
}

func newPAllocator(t *testing.T) *pAllocator {
	t.Helper()
	a, err := New(memextend.NewSlice())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &pAllocator{Allocator: a, t: t}
}

func (p *pAllocator) verify(op string) {
	p.t.Helper()
	if err := p.Allocator.CheckHeap(false); err != nil {
		p.t.Fatalf("%s: heap corrupt: %v", op, err)
	}
}

func (p *pAllocator) Alloc(u int) Handle {
	p.t.Helper()
	h, err := p.Allocator.Alloc(u)
	if err != nil {
		p.t.Fatalf("Alloc(%d): %v", u, err)
	}
	p.verify(fmt.Sprintf("Alloc(%d) -> %#x", u, h))
	return h
}

func (p *pAllocator) Free(h Handle) {
	p.t.Helper()
	if err := p.Allocator.Free(h); err != nil {
		p.t.Fatalf("Free(%#x): %v", h, err)
	}
	p.verify(fmt.Sprintf("Free(%#x)", h))
}

func (p *pAllocator) Realloc(h Handle, u int) Handle {
	p.t.Helper()
	nh := p.Allocator.Realloc(h, u)
	p.verify(fmt.Sprintf("Realloc(%#x, %d) -> %#x", h, u, nh))
	return nh
}

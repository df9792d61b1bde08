// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package memextend

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped backs a managed region with a real anonymous mmap mapping, grown
// with mremap (MREMAP_MAYMOVE, so the mapping may relocate). It exists so the command-line trace driver (see
// cmd/malloctrace) can exercise the allocator against genuine virtual
// memory rather than only a Go slice, the same way SeleniaProject-Orizon's
// asyncio package reaches for golang.org/x/sys/unix directly, behind a
// build-tagged file, whenever it needs a raw syscall no stdlib wrapper
// exposes.
type Mapped struct {
	base []byte // addr, reslice on every grow; len == mapped size
}

// NewMapped returns an empty Mapped extender.
func NewMapped() *Mapped {
	return &Mapped{}
}

// Size implements malloc.Extender.
func (m *Mapped) Size() int { return len(m.base) }

// Bytes implements malloc.Extender.
func (m *Mapped) Bytes() []byte { return m.base }

// Extend implements malloc.Extender.
func (m *Mapped) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, &ErrInvalid{n}
	}

	base := len(m.base)
	newLen := base + n

	if m.base == nil {
		b, err := unix.Mmap(-1, 0, newLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
		if err != nil {
			return 0, fmt.Errorf("memextend: mmap %d bytes: %w", newLen, err)
		}
		m.base = b
		return 0, nil
	}

	grown, err := unix.Mremap(m.base, newLen, unix.MREMAP_MAYMOVE)
	if err != nil {
		return 0, fmt.Errorf("memextend: mremap to %d bytes: %w", newLen, err)
	}
	m.base = grown
	return base, nil
}

// Close unmaps the region. It is not part of malloc.Extender — the
// allocator never unmaps, per spec.md's Non-goal of returning memory to the
// OS — but the trace driver calls it on exit to be a good citizen.
func (m *Mapped) Close() error {
	if m.base == nil {
		return nil
	}
	err := unix.Munmap(m.base)
	m.base = nil
	return err
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin
// +build darwin

package memextend

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped backs a managed region with a real anonymous mmap mapping. Darwin
// has no mremap, so growth maps a fresh, larger region, copies the old
// content across, and unmaps the old region — the same relocate-on-grow
// trade-off malloc.Extender documents as possible for any implementation.
type Mapped struct {
	base []byte
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

	grown, err := unix.Mmap(-1, 0, newLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, fmt.Errorf("memextend: mmap %d bytes: %w", newLen, err)
	}
	copy(grown, m.base)

	if m.base != nil {
		if err := unix.Munmap(m.base); err != nil {
			return 0, fmt.Errorf("memextend: munmap old region: %w", err)
		}
	}
	m.base = grown
	return base, nil
}

// Close unmaps the region; see the Linux variant's Close for rationale.
func (m *Mapped) Close() error {
	if m.base == nil {
		return nil
	}
	err := unix.Munmap(m.base)
	m.base = nil
	return err
}

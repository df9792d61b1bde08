// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux && !darwin
// +build !linux,!darwin

package memextend

import "errors"

// Mapped is unavailable on platforms without a real mmap-growth path; use
// Slice instead. The type still exists so cmd/malloctrace can reference
// memextend.Mapped unconditionally and report a clear error at runtime
// rather than failing to compile per platform.
type Mapped struct{}

// NewMapped returns a Mapped extender that always fails. It does not fall
// back to Slice silently: the caller asked for real virtual memory and
// should know it didn't get it.
func NewMapped() *Mapped { return &Mapped{} }

func (m *Mapped) Size() int     { return 0 }
func (m *Mapped) Bytes() []byte { return nil }

func (m *Mapped) Extend(n int) (int, error) {
	return 0, errors.New("memextend: Mapped is not supported on this platform")
}

func (m *Mapped) Close() error { return nil }

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package malloc implements a segregated-fit dynamic memory allocator over a
// single contiguous, monotonically-growable arena.
//
// The managed arena is a linear sequence of blocks:
//
//	[ seglist head array ][ prologue ][ zero or more blocks ][ epilogue ]
//
// Every block carries a boundary tag: an 8-byte header and, for free blocks
// (and every block reachable by a backward walk from an allocated one), a
// matching 8-byte footer holding the same size and allocated bit. Free
// blocks are additionally linked into one of C doubly-linked free lists,
// indexed by a size class derived from the block's size, and searched
// first-fit.
//
// The four public operations are New (init), Alloc, Free and Realloc,
// methods on an *Allocator. An Allocator is not safe for concurrent use: it
// is designed for consumption from a single goroutine, the same way lldb's
// Filer is documented to require.
package malloc

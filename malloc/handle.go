// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// Handle is an opaque, client-visible reference to an allocated block's
// payload: a byte offset into the arena, not a real Go pointer (the arena
// can move when the Extender grows it — see SPEC_FULL.md Design Notes on
// addressing). The zero Handle is the null payload returned for a 0-byte
// request or on allocation failure.
type Handle int

// Valid reports whether h is non-null.
func (h Handle) Valid() bool {
	return h != 0
}

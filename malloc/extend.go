// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// Extender is the external heap-extender collaborator (spec.md §6): a
// process-wide, single-threaded shim that grows the managed region by a
// requested number of bytes. It is consumed, never implemented, by this
// package — implementations live in package memextend.
type Extender interface {
	// Extend grows the managed region by exactly n bytes (n > 0) and
	// returns the offset at which the new bytes begin; that offset
	// always equals Size() as observed before the call. An error
	// indicates the region could not be grown (out of memory).
	Extend(n int) (base int, err error)

	// Size reports the current extent of the managed region, in bytes.
	Size() int

	// Bytes returns the full backing slice of the managed region. Its
	// backing array may differ from a previous call's, since growth can
	// relocate the region; callers must re-fetch Bytes after every call
	// to Extend.
	Bytes() []byte
}

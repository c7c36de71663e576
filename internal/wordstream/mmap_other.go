// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !unix

package wordstream

// OpenMmap falls back to a full read on platforms without a POSIX mmap
// (e.g. Windows); bvgraph's loader does not special-case the platform, it
// just gets a Stream either way.
func OpenMmap(path string) (Stream, error) {
	return OpenFile(path)
}

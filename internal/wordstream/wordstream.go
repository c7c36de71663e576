// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package wordstream backs a bitio.Reader/Writer with the byte buffer it
// reads or writes (§6.1's ".graph" body), abstracting over how that buffer
// gets into memory: read whole, handed in directly, or mapped. bvgraph's
// loader opens the .graph body through this package (OpenMmap); it reads
// the small .offsets sidecar with os.ReadFile.
package wordstream

import (
	"io"
	"os"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "wordstream: " + string(e) }

// Stream is a read-only view of a sidecar file's bytes, sized to an exact
// bit count rather than rounded up to the containing byte.
//
// Close releases any OS-level resource (an mmap'd region); it is always
// safe to call, including on a Stream whose backend holds none.
type Stream interface {
	// Bytes returns the full backing buffer. The high bits of the last
	// byte beyond NumBits may be garbage and must not be interpreted.
	Bytes() []byte
	// NumBits returns the exact number of meaningful bits in Bytes.
	NumBits() int64
	Close() error
}

// memStream wraps an already-resident byte slice (e.g. one built in a test
// with internal/testutil, or one returned by an encoder's Flush).
type memStream struct {
	data  []byte
	nbits int64
}

// New wraps data as a Stream exposing exactly nbits bits. It is the
// in-memory backend: no file descriptor, Close is a no-op.
func New(data []byte, nbits int64) Stream {
	return &memStream{data: data, nbits: nbits}
}

func (s *memStream) Bytes() []byte  { return s.data }
func (s *memStream) NumBits() int64 { return s.nbits }
func (s *memStream) Close() error   { return nil }

// fileStream holds a fully-read file's contents; used on platforms or
// filesystems where mmap is unavailable or undesired (small sidecar files,
// Windows, network filesystems).
type fileStream struct {
	data []byte
}

func (s *fileStream) Bytes() []byte  { return s.data }
func (s *fileStream) NumBits() int64 { return int64(len(s.data)) * 8 }
func (s *fileStream) Close() error   { return nil }

// OpenFile reads path fully into memory and returns a Stream over its
// bytes. NumBits is 8*len(data); callers that need an exact bit count
// narrower than a byte multiple (as the .graph body's last node boundary
// may be) must track it separately, the way bvgraph's decoder does via its
// offsets sidecar.
func OpenFile(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &fileStream{data: data}, nil
}

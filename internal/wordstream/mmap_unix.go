// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build unix

package wordstream

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapStream is a read-only memory-mapped view of a file, used for the
// .graph body of graphs large enough that reading it whole would
// waste RSS the OS page cache already holds for free.
type mmapStream struct {
	data []byte
}

func (s *mmapStream) Bytes() []byte  { return s.data }
func (s *mmapStream) NumBits() int64 { return int64(len(s.data)) * 8 }

func (s *mmapStream) Close() error {
	if s.data == nil {
		return nil
	}
	data := s.data
	s.data = nil
	return unix.Munmap(data)
}

// OpenMmap maps path read-only into the address space and returns a Stream
// over it. The caller must call Close when done to release the mapping.
func OpenMmap(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &memStream{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, Error("mmap: " + err.Error())
	}
	return &mmapStream{data: data}, nil
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package code

import (
	"math/bits"

	"github.com/webgraph-go/bvgraph/internal/bitio"
)

// γ (gamma): k maps to unary(⌊log₂(k+1)⌋) followed by the low ⌊log₂(k+1)⌋
// bits of k+1 (§4.1). Equivalently, this is the classic Elias gamma code of
// the positive integer k+1.

func readGamma(r bitio.Reader) (uint64, error) {
	h, err := r.ReadUnary()
	if err != nil {
		return 0, err
	}
	if h == 0 {
		return 0, nil
	}
	if h > 63 {
		return 0, bitio.ErrRange
	}
	tail, err := r.ReadBits(uint(h))
	if err != nil {
		return 0, err
	}
	x := uint64(1)<<uint(h) | tail
	return x - 1, nil
}

func writeGamma(w bitio.Writer, k uint64) error {
	x := k + 1
	h := uint(bits.Len64(x)) - 1
	if err := w.WriteUnary(uint64(h)); err != nil {
		return err
	}
	if h == 0 {
		return nil
	}
	tail := x - uint64(1)<<h
	return w.WriteBits(tail, h)
}

func lenGamma(k uint64) int {
	x := k + 1
	h := uint(bits.Len64(x)) - 1
	return 2*int(h) + 1
}

// ReadGamma, WriteGamma and LenGamma expose the γ code directly, for the
// offsets sidecar (§4.4, §6.1), which always uses γ regardless of the
// graph's configured code kinds.
func ReadGamma(r bitio.Reader) (uint64, error) { return readGamma(r) }
func WriteGamma(w bitio.Writer, k uint64) error { return writeGamma(w, k) }
func LenGamma(k uint64) int                     { return lenGamma(k) }

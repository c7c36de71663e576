// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package code

import (
	"math/bits"

	"github.com/webgraph-go/bvgraph/internal/bitio"
)

// δ (delta): k maps to γ(⌊log₂(k+1)⌋) followed by the low ⌊log₂(k+1)⌋ bits
// of k+1 (§4.1). The bucket index is itself γ-coded rather than unary-coded,
// trading a slightly larger constant for a logarithmic rather than linear
// bucket cost — better suited to heavier tails than γ alone.

func readDelta(r bitio.Reader) (uint64, error) {
	h, err := readGamma(r)
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

func writeDelta(w bitio.Writer, k uint64) error {
	x := k + 1
	h := uint(bits.Len64(x)) - 1
	if err := writeGamma(w, uint64(h)); err != nil {
		return err
	}
	if h == 0 {
		return nil
	}
	tail := x - uint64(1)<<h
	return w.WriteBits(tail, h)
}

func lenDelta(k uint64) int {
	x := k + 1
	h := uint(bits.Len64(x)) - 1
	return lenGamma(uint64(h)) + int(h)
}

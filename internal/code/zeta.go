// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package code

import (
	"math/bits"

	"github.com/webgraph-go/bvgraph/internal/bitio"
)

// ζₖ (zeta, parameter k ∈ [1,7]): a generalization of γ that spends a whole
// unary-coded bucket of width k bits instead of 1, trading resolution for a
// flatter cost curve on power-law out-degree distributions. k=1 degenerates
// to γ exactly (handled by dispatch in code.go, not here).
//
// For x >= 0, let x1 = x+1, h = ⌊log2(x1)⌋ / k (bucket index). The stream
// holds unary(h), then the residual x1 - 2^(h*k) encoded as a minimal binary
// (truncated binary) code over the bucket's range [0, 2^(h*k)*(2^k - 1)).

func bucket(x1 uint64, k int) (h uint, lo, rng uint64) {
	h = (uint(bits.Len64(x1)) - 1) / uint(k)
	lo = uint64(1) << (h * uint(k))
	rng = lo * (uint64(1)<<uint(k) - 1)
	return h, lo, rng
}

func readZeta(r bitio.Reader, k int) (uint64, error) {
	h, err := r.ReadUnary()
	if err != nil {
		return 0, err
	}
	if (h+1)*uint64(k) > 63 {
		return 0, bitio.ErrRange
	}
	lo := uint64(1) << (uint(h) * uint(k))
	rng := lo * (uint64(1)<<uint(k) - 1)
	v, err := readMinimalBinary(r, rng)
	if err != nil {
		return 0, err
	}
	return lo + v - 1, nil
}

func writeZeta(w bitio.Writer, x uint64, k int) error {
	x1 := x + 1
	h, lo, rng := bucket(x1, k)
	if err := w.WriteUnary(uint64(h)); err != nil {
		return err
	}
	return writeMinimalBinary(w, x1-lo, rng)
}

func lenZeta(x uint64, k int) int {
	x1 := x + 1
	h, lo, rng := bucket(x1, k)
	return int(h) + 1 + minimalBinaryLen(x1-lo, rng)
}

// minimalBinaryBits returns the truncated-binary parameters for encoding a
// value in [0, n): b is the short codeword width, u is the number of
// low-valued codewords that fit in b bits rather than b+1.
func minimalBinaryBits(n uint64) (b uint, u uint64) {
	if n <= 1 {
		return 0, 0
	}
	b = uint(bits.Len64(n)) - 1
	u = uint64(1)<<(b+1) - n
	return b, u
}

func writeMinimalBinary(w bitio.Writer, v, n uint64) error {
	b, u := minimalBinaryBits(n)
	if b == 0 {
		return nil
	}
	if v < u {
		return w.WriteBits(v, b)
	}
	// Emit the b-bit prefix and the extra bit separately, matching the two
	// reads readMinimalBinary makes, so both bit orders decode correctly.
	v += u
	if err := w.WriteBits(v>>1, b); err != nil {
		return err
	}
	return w.WriteBits(v&1, 1)
}

func readMinimalBinary(r bitio.Reader, n uint64) (uint64, error) {
	b, u := minimalBinaryBits(n)
	if b == 0 {
		return 0, nil
	}
	p, err := r.ReadBits(b)
	if err != nil {
		return 0, err
	}
	if p < u {
		return p, nil
	}
	last, err := r.ReadBits(1)
	if err != nil {
		return 0, err
	}
	return (p<<1 | last) - u, nil
}

func minimalBinaryLen(v, n uint64) int {
	b, u := minimalBinaryBits(n)
	if b == 0 {
		return 0
	}
	if v < u {
		return int(b)
	}
	return int(b) + 1
}

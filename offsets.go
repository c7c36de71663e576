// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/code"
)

// Offsets is the loaded .offsets sidecar (§4.4, §6.1): for every node
// v in [0, N] the bit position its record begins at (N is the
// past-the-end sentinel). The wire format always uses γ regardless of the
// graph's configured code kinds (no property selects another code for
// it); this package decodes it into
// the abstract indexed monotone sequence the core needs (§6.3), using a
// plain cumulative slice. A production deployment would substitute a
// succinct Elias-Fano structure behind the same Get(v) contract; that
// structure is an external collaborator this package does not implement
// (§1).
type Offsets struct {
	pos []int64 // cumulative bit positions, len == N+1
}

// Get returns the bit offset at which node v's record begins. v == N is
// the valid past-the-end sentinel.
func (o *Offsets) Get(v int64) (int64, error) {
	if v < 0 || int(v) >= len(o.pos) {
		return 0, errorf(Argument, "bvgraph: offsets", v, "node out of range [0, %d]", len(o.pos)-1)
	}
	return o.pos[v], nil
}

// Len returns N, the number of nodes this offsets table covers.
func (o *Offsets) Len() int64 { return int64(len(o.pos)) - 1 }

// DecodeOffsets parses a .offsets sidecar's raw bytes in the given bit
// order into an Offsets table covering numNodes nodes (the sidecar always
// holds numNodes+1 gap-coded values: one per node boundary, plus the
// trailing sentinel, §4.4).
func DecodeOffsets(data []byte, nbits int64, order bitio.Order, numNodes int64) (*Offsets, error) {
	var br bitio.Reader
	if order == bitio.LSB {
		br = bitio.NewLSBReader(data, nbits)
	} else {
		br = bitio.NewMSBReader(data, nbits)
	}
	pos := make([]int64, numNodes+1)
	var cum int64
	for i := int64(0); i <= numNodes; i++ {
		gap, err := code.ReadGamma(br)
		if err != nil {
			return nil, errorf(Corruption, "bvgraph: offsets", i, "decoding gap: %v", err)
		}
		cum += int64(gap)
		pos[i] = cum
	}
	return &Offsets{pos: pos}, nil
}

// OffsetsWriter accumulates node-boundary bit positions during compression
// and γ-gap-encodes them to its own bitio.Writer as they arrive, so the
// compressor never needs to hold the whole offsets table in memory at once
// beyond the one running cumulative value. The same mechanism, fed
// cumulative outdegrees instead of bit positions, produces the optional
// .dcf sidecar (§6.1, §13): both are just γ-gap-coded strictly-increasing
// sequences, so compress.go reuses this type for either.
type OffsetsWriter struct {
	w    bitio.Writer
	last int64
}

// NewOffsetsWriter constructs a writer; the sentinel e(-1) = 0 (§4.4) is
// the implicit starting value of last.
func NewOffsetsWriter(w bitio.Writer) *OffsetsWriter {
	return &OffsetsWriter{w: w}
}

// Put records that the most recently written node's record ends at
// absolute bit position pos, emitting γ(pos - last).
func (ow *OffsetsWriter) Put(pos int64) error {
	gap := pos - ow.last
	if gap < 0 {
		return errorf(State, "bvgraph: offsets", -1, "bit position %d precedes previous offset %d", pos, ow.last)
	}
	ow.last = pos
	return code.WriteGamma(ow.w, uint64(gap))
}

// Flush pads the underlying writer's output to a byte boundary and returns
// it.
func (ow *OffsetsWriter) Flush() []byte { return ow.w.Flush() }

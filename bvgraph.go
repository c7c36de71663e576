// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"github.com/webgraph-go/bvgraph/internal/bitio"
)

// Node identifies a vertex; graphs are dense over [0, N).
type Node = int64

// SequentialGraph scans a compressed graph's node records in order. It
// requires no offsets sidecar (§4.4 "sequential readers... must function
// without them") and holds only the small rolling window of decoded
// predecessor lists the codec's reference chain needs.
type SequentialGraph interface {
	// NumNodes returns N.
	NumNodes() int64
	// NumArcs returns the sum of outdegrees recorded in the .properties
	// sidecar, or 0 if it did not record one (internal/properties.Doc
	// defaults an absent "arcs" key to 0, not a sentinel).
	NumArcs() int64
	// Iterator returns a fresh NodeIterator positioned before node 0.
	Iterator() *NodeIterator
	Close() error
}

// RandomAccessGraph additionally supports seeking to any node via the
// offsets sidecar (§4.3, §4.4) and is safe to share across goroutines: each
// call constructs its own lightweight decoder view (§5 "Reader side").
type RandomAccessGraph interface {
	SequentialGraph
	// Successors returns v's out-neighbors in strictly increasing order.
	Successors(v Node) ([]Node, error)
	// Degree returns len(Successors(v)) without materializing the list,
	// when the underlying decoder can answer it more cheaply.
	Degree(v Node) (int, error)
}

// graph is the concrete implementation shared by Load's two return modes;
// offsets is nil for a sequential-only graph.
type graph struct {
	cfg     *Config
	stream  wordStream
	numNode int64
	numArc  int64
	offsets *Offsets // nil when random access is unavailable
}

// wordStream is the minimal surface bvgraph needs from internal/wordstream,
// restated here to avoid every file in this package importing that package
// directly.
type wordStream interface {
	Bytes() []byte
	NumBits() int64
	Close() error
}

func (g *graph) NumNodes() int64 { return g.numNode }
func (g *graph) NumArcs() int64  { return g.numArc }

func (g *graph) Close() error {
	if g.stream != nil {
		return g.stream.Close()
	}
	return nil
}

// newReader constructs a bitio.Reader over the graph's bitstream in its
// configured bit order, matching the order recorded in its .properties
// sidecar (§4.1 "mixing yields nonsense, never undefined behavior").
func (g *graph) newReader() bitio.Reader {
	data := g.stream.Bytes()
	nbits := g.stream.NumBits()
	if g.cfg.Order == bitio.LSB {
		return bitio.NewLSBReader(data, nbits)
	}
	return bitio.NewMSBReader(data, nbits)
}

// Iterator returns a sequential NodeIterator starting at node 0.
func (g *graph) Iterator() *NodeIterator {
	return &NodeIterator{g: g, br: g.newReader(), next: 0}
}

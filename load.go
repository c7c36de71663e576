// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"os"

	"github.com/webgraph-go/bvgraph/internal/wordstream"
)

// Load reads the .properties, .graph, and (if present) .offsets sidecars
// sharing basename and returns a graph. If the .offsets file is missing,
// the returned RandomAccessGraph is nil and only the SequentialGraph return
// value is usable (§4.4 "sequential readers... must function without
// them"); random-access methods on a graph without offsets return a State
// error instead.
//
// Load memory-maps the .graph body when possible, falling back to a full
// read (internal/wordstream.OpenMmap already does this per-platform).
func Load(basename string) (SequentialGraph, RandomAccessGraph, error) {
	propData, err := os.ReadFile(basename + ".properties")
	if err != nil {
		return nil, nil, &Error{Kind: IO, Op: "bvgraph: load", Node: -1, Err: err}
	}
	props, err := ParseProperties(propData)
	if err != nil {
		return nil, nil, err
	}

	stream, err := wordstream.OpenMmap(basename + ".graph")
	if err != nil {
		return nil, nil, &Error{Kind: IO, Op: "bvgraph: load", Node: -1, Err: err}
	}

	g := &graph{cfg: props.cfg, stream: stream, numNode: props.Nodes, numArc: props.Arcs}

	offData, err := os.ReadFile(basename + ".offsets")
	switch {
	case err == nil:
		offs, derr := DecodeOffsets(offData, int64(len(offData))*8, props.cfg.Order, props.Nodes)
		if derr != nil {
			stream.Close()
			return nil, nil, derr
		}
		g.offsets = offs
		return g, g, nil
	case os.IsNotExist(err):
		return g, nil, nil
	default:
		stream.Close()
		return nil, nil, &Error{Kind: IO, Op: "bvgraph: load", Node: -1, Err: err}
	}
}

// LoadSequential is a convenience wrapper for callers that only intend to
// scan the graph once and never need random access or offsets at all.
func LoadSequential(basename string) (SequentialGraph, error) {
	seq, _, err := Load(basename)
	return seq, err
}

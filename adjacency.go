// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

// AdjacencyIterator supplies one node's sorted, distinct successor list at a
// time, in increasing node order: the uncompressed input a compressor
// consumes (§4.5, §8 "Round-trip" — "every adjacency stream... sorted per
// node and globally distinct-per-source"). *NodeIterator already has this
// shape, so a loaded graph's own sequential decoder doubles as the input to
// a recompression pass.
type AdjacencyIterator interface {
	HasNext() bool
	Next() (int64, []int64, error)
}

// AdjacencySource is anything CompressSequential or CompressParallel can
// turn into a .graph bitstream: a known node count plus a fresh
// AdjacencyIterator over it.
type AdjacencySource interface {
	NumNodes() int64
	Iterator() AdjacencyIterator
}

// ListGraph is the simplest AdjacencySource: an adjacency list already held
// in memory, one sorted and distinct successor slice per node. This is what
// a caller builds before a first compression, the way the reference
// implementation's arc-list graph wrapper does, rather than recompressing an
// already-loaded graph.
type ListGraph struct {
	lists [][]int64
}

// NewListGraph wraps lists as an AdjacencySource. Each lists[v] must already
// be sorted in strictly increasing order; CompressSequential and
// CompressParallel do not re-sort or de-duplicate their input.
func NewListGraph(lists [][]int64) *ListGraph {
	return &ListGraph{lists: lists}
}

// NumNodes returns len(lists).
func (g *ListGraph) NumNodes() int64 { return int64(len(g.lists)) }

// Iterator returns a fresh AdjacencyIterator positioned before node 0.
func (g *ListGraph) Iterator() AdjacencyIterator {
	return &listIterator{lists: g.lists}
}

type listIterator struct {
	lists [][]int64
	next  int64
}

func (it *listIterator) HasNext() bool { return it.next < int64(len(it.lists)) }

func (it *listIterator) Next() (int64, []int64, error) {
	if !it.HasNext() {
		return 0, nil, errorf(State, "bvgraph: iterate", it.next, "no more nodes")
	}
	v := it.next
	it.next++
	return v, it.lists[v], nil
}

// graphAdjacencySource adapts a loaded graph's own sequential decoder into
// an AdjacencySource, letting CompressSequential/CompressParallel
// recompress a graph already on disk (e.g. with a different Config) without
// the caller having to materialize every successor list by hand first.
type graphAdjacencySource struct{ g *graph }

// AsAdjacencySource exposes g for recompression.
func (g *graph) AsAdjacencySource() AdjacencySource { return graphAdjacencySource{g} }

func (a graphAdjacencySource) NumNodes() int64 { return a.g.NumNodes() }

func (a graphAdjacencySource) Iterator() AdjacencyIterator { return a.g.Iterator() }

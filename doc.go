// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bvgraph implements the BV (Boldi-Vigna) compression scheme for
// very large directed graphs: successor lists are encoded using
// reference-based redundancy elimination against a nearby predecessor,
// interval compression for runs of consecutive successors, and gap-coded
// residuals for what is left over.
//
// The package provides a SequentialGraph for one-pass scanning that needs
// no sidecar beyond the .properties and .graph files, a RandomAccessGraph
// for seeking to any node's successors via the .offsets sidecar, and a
// compressor (CompressSequential, CompressParallel) that turns a sorted
// adjacency stream into a compressed graph. Load reads an existing graph
// from a basename shared by its sidecar files.
package bvgraph

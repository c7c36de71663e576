// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"io"

	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/properties"
)

// Properties is the parsed .properties sidecar (§6.1): node/arc counts plus
// everything needed to reconstruct the Config the .graph body was written
// with. Extra preserves any key this package does not itself interpret,
// e.g. labelling-codec metadata from a producer that also writes
// .labels/.labeloffsets (§13 "format acknowledgement"), so round-tripping a
// file this package didn't fully understand does not silently drop data.
type Properties struct {
	Nodes int64
	Arcs  int64
	Extra map[string]string

	cfg *Config
}

// Config returns the Config this Properties describes.
func (p *Properties) Config() *Config { return p.cfg }

// ParseProperties decodes a .properties sidecar's raw bytes and validates
// the version/endianness coupling (§6.1 "A mismatch is a fatal load
// error").
func ParseProperties(data []byte) (*Properties, error) {
	doc, err := properties.Parse(data)
	if err != nil {
		return nil, &Error{Kind: ConfigParse, Op: "bvgraph: parse properties", Node: -1, Err: err}
	}

	var order bitio.Order
	switch doc.Endianness {
	case "big-endian":
		order = bitio.MSB
	case "little-endian":
		order = bitio.LSB
	default:
		return nil, errorf(ConfigParse, "bvgraph: parse properties", -1,
			"unrecognized endianness %q", doc.Endianness)
	}
	wantVersion := 0
	if order == bitio.LSB {
		wantVersion = 1
	}
	if doc.Version != wantVersion {
		return nil, errorf(ConfigParse, "bvgraph: parse properties", -1,
			"version %d does not match endianness %q (requires version %d)",
			doc.Version, doc.Endianness, wantVersion)
	}

	kinds, err := parseCompressionFlags(doc.CompressionFlags)
	if err != nil {
		return nil, &Error{Kind: ConfigParse, Op: "bvgraph: parse properties", Node: -1, Err: err}
	}
	cfg, err := NewConfig(Options{
		Window:            doc.WindowSize,
		MinIntervalLength: doc.MinIntervalLength,
		MaxRefCount:       doc.MaxRefCount,
		ZetaK:             doc.ZetaK,
		Order:             order,
		Kinds:             kinds,
	})
	if err != nil {
		return nil, err
	}

	return &Properties{Nodes: doc.Nodes, Arcs: doc.Arcs, Extra: doc.Extra, cfg: cfg}, nil
}

// Marshal writes p out in .properties text format, deriving every
// codec-shape key from p.Config() (§6.1).
func (p *Properties) Marshal(w io.Writer) error {
	endianness := "big-endian"
	version := 0
	if p.cfg.Order == bitio.LSB {
		endianness = "little-endian"
		version = 1
	}
	doc := &properties.Doc{
		Nodes:             p.Nodes,
		Arcs:              p.Arcs,
		Version:           version,
		Endianness:        endianness,
		WindowSize:        p.cfg.Window,
		MaxRefCount:       p.cfg.MaxRefCount,
		MinIntervalLength: p.cfg.MinIntervalLength,
		ZetaK:             p.cfg.code.ZetaK,
		CompressionFlags:  formatCompressionFlags(p.cfg),
		Extra:             p.Extra,
	}
	return doc.Marshal(w)
}

// NewProperties builds a Properties ready to marshal for a freshly
// compressed graph.
func NewProperties(nodes, arcs int64, cfg *Config) *Properties {
	return &Properties{Nodes: nodes, Arcs: arcs, cfg: cfg, Extra: make(map[string]string)}
}

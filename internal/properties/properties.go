// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package properties parses and marshals the ".properties" sidecar (§6.1):
// a Java-style key=value text file recording a graph's node/arc counts and
// the parameters its .graph body was encoded with. It is a thin adapter
// over github.com/magiconair/properties, which already implements the
// Java properties text format bvgraph's sidecar reuses verbatim.
package properties

import (
	"fmt"
	"io"

	"github.com/magiconair/properties"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "properties: " + string(e) }

// Doc is the parsed contents of a .properties sidecar (§6.1). Fields map
// directly onto the keys WebGraph-family tools read and write; Extra holds
// any key Doc does not otherwise recognize (e.g. labelling-codec metadata),
// preserved so re-marshaling a file this package didn't fully understand
// does not silently drop data.
type Doc struct {
	Nodes             int64
	Arcs              int64
	Version           int
	Endianness        string // "big-endian" or "little-endian"
	WindowSize        int
	MaxRefCount       int
	MinIntervalLength int
	ZetaK             int
	CompressionFlags  string // e.g. "OUTDEGREES_GAMMA|REFERENCES_UNARY|..."

	Extra map[string]string
}

const (
	keyNodes             = "nodes"
	keyArcs              = "arcs"
	keyVersion           = "version"
	keyEndianness        = "endianness"
	keyWindowSize        = "windowsize"
	keyMaxRefCount       = "maxrefcount"
	keyMinIntervalLength = "minintervallength"
	keyZetaK             = "zetak"
	keyCompressionFlags  = "compressionflags"
)

var knownKeys = map[string]bool{
	keyNodes: true, keyArcs: true, keyVersion: true, keyEndianness: true,
	keyWindowSize: true, keyMaxRefCount: true, keyMinIntervalLength: true,
	keyZetaK: true, keyCompressionFlags: true,
}

// Parse decodes a .properties file's raw bytes.
func Parse(data []byte) (*Doc, error) {
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, Error(err.Error())
	}
	d := &Doc{Extra: make(map[string]string)}
	d.Nodes = p.GetInt64(keyNodes, 0)
	d.Arcs = p.GetInt64(keyArcs, 0)
	d.Version = p.GetInt(keyVersion, 0)
	d.Endianness = p.GetString(keyEndianness, "big-endian")
	d.WindowSize = p.GetInt(keyWindowSize, 7)
	d.MaxRefCount = p.GetInt(keyMaxRefCount, 3)
	d.MinIntervalLength = p.GetInt(keyMinIntervalLength, 4)
	d.ZetaK = p.GetInt(keyZetaK, 3)
	d.CompressionFlags = p.GetString(keyCompressionFlags, "")

	for _, k := range p.Keys() {
		if !knownKeys[k] {
			d.Extra[k] = p.GetString(k, "")
		}
	}
	return d, nil
}

// Marshal writes d out in the .properties text format, known keys first
// (in the order WebGraph-family tools conventionally emit them) followed by
// any Extra keys preserved from a prior Parse.
func (d *Doc) Marshal(w io.Writer) error {
	p := properties.NewProperties()
	set := func(k, v string) {
		if _, _, err := p.Set(k, v); err != nil {
			panic(err) // Set only fails on malformed keys, which literals never are.
		}
	}
	set(keyNodes, fmt.Sprintf("%d", d.Nodes))
	set(keyArcs, fmt.Sprintf("%d", d.Arcs))
	set(keyVersion, fmt.Sprintf("%d", d.Version))
	set(keyEndianness, d.Endianness)
	set(keyWindowSize, fmt.Sprintf("%d", d.WindowSize))
	set(keyMaxRefCount, fmt.Sprintf("%d", d.MaxRefCount))
	set(keyMinIntervalLength, fmt.Sprintf("%d", d.MinIntervalLength))
	set(keyZetaK, fmt.Sprintf("%d", d.ZetaK))
	set(keyCompressionFlags, d.CompressionFlags)
	for k, v := range d.Extra {
		set(k, v)
	}
	_, err := p.Write(w, properties.UTF8)
	return err
}

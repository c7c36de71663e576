// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"fmt"
	"strings"

	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/code"
)

// Config holds every parameter that affects how a .graph bitstream is laid
// out: the compression window, the minimum interval length, the maximum
// reference-chain depth, the per-position code kinds, and the bit ordering
// (§3, §4.1, §6.1). A Config is immutable after NewConfig validates it.
type Config struct {
	Window            int // W: max backward reference distance, 0 disables references
	MinIntervalLength int // L: 0 disables intervals
	MaxRefCount       int // R: bound on reference-chain depth

	Order bitio.Order

	// EmitDegreeCumulativeFile records that a .dcf sidecar (a γ-gap-coded
	// stream of cumulative outdegree, mirroring .offsets, enabling
	// arc-granularity parallel scans, §6.1, §13) is wanted. The compressors
	// do not read it: they write a .dcf stream whenever
	// CompressOptions.DegreeCumulative is set, whatever this field says.
	EmitDegreeCumulativeFile bool

	code *code.Config
}

// DefaultConfig matches the WebGraph reference defaults: window 7,
// min-interval-length 4, max-ref-count 3, MSB ordering, GAMMA everywhere
// except UNARY references and ZETA-3 residuals (§6.1).
func DefaultConfig() *Config {
	c, err := NewConfig(Options{
		Window:            7,
		MinIntervalLength: 4,
		MaxRefCount:       3,
		ZetaK:             3,
		Order:             bitio.MSB,
	})
	if err != nil {
		panic(err) // the defaults are always valid
	}
	return c
}

// Options is the user-facing knob set NewConfig validates into a Config.
// Kinds, when nil, takes each position's §6.1 default.
type Options struct {
	Window                   int
	MinIntervalLength        int
	MaxRefCount              int
	ZetaK                    int
	Order                    bitio.Order
	Kinds                    map[code.Position]code.Kind
	EmitDegreeCumulativeFile bool
}

// NewConfig validates opts and resolves its code dispatch tables. Argument
// errors are returned with Kind Argument; the caller has supplied a value
// violating a documented precondition (§7).
func NewConfig(opts Options) (*Config, error) {
	if opts.Window < 0 {
		return nil, &Error{Kind: Argument, Op: "bvgraph: new config", Node: -1,
			Err: fmt.Errorf("negative compression window %d", opts.Window)}
	}
	if opts.MaxRefCount < 0 {
		return nil, &Error{Kind: Argument, Op: "bvgraph: new config", Node: -1,
			Err: fmt.Errorf("negative max-ref-count %d", opts.MaxRefCount)}
	}
	if opts.Window > 0 && opts.MaxRefCount == 0 {
		return nil, &Error{Kind: Argument, Op: "bvgraph: new config", Node: -1,
			Err: fmt.Errorf("compression window %d > 0 requires a positive max-ref-count", opts.Window)}
	}

	var kinds [5]code.Kind
	for p := code.Position(0); p < code.Position(code.NumPositions); p++ {
		if opts.Kinds != nil {
			if k, ok := opts.Kinds[p]; ok {
				kinds[p] = k
				continue
			}
		}
		kinds[p] = p.DefaultKind()
	}
	zetaK := opts.ZetaK
	if zetaK == 0 {
		zetaK = 3
	}
	cc, err := code.NewConfig(kinds, zetaK)
	if err != nil {
		return nil, &Error{Kind: ConfigParse, Op: "bvgraph: new config", Node: -1, Err: err}
	}
	return &Config{
		Window:                   opts.Window,
		MinIntervalLength:        opts.MinIntervalLength,
		MaxRefCount:              opts.MaxRefCount,
		Order:                    opts.Order,
		EmitDegreeCumulativeFile: opts.EmitDegreeCumulativeFile,
		code:                     cc,
	}, nil
}

// parseCompressionFlags decodes a pipe-separated "POSITION_KIND" token list
// (§6.1) into a Kinds map suitable for Options.Kinds. An empty string
// yields an empty (all-default) map.
func parseCompressionFlags(s string) (map[code.Position]code.Kind, error) {
	m := make(map[code.Position]code.Kind)
	s = strings.TrimSpace(s)
	if s == "" {
		return m, nil
	}
	for _, tok := range strings.Split(s, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		i := strings.IndexByte(tok, '_')
		if i < 0 {
			return nil, fmt.Errorf("malformed compression flag %q", tok)
		}
		posName, kindName := tok[:i], tok[i+1:]
		pos, err := parsePosition(posName)
		if err != nil {
			return nil, err
		}
		kind, err := code.ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		m[pos] = kind
	}
	return m, nil
}

func parsePosition(s string) (code.Position, error) {
	switch s {
	case "OUTDEGREES":
		return code.Outdegrees, nil
	case "REFERENCES":
		return code.References, nil
	case "BLOCKS":
		return code.Blocks, nil
	case "INTERVALS":
		return code.Intervals, nil
	case "RESIDUALS":
		return code.Residuals, nil
	default:
		return 0, fmt.Errorf("unrecognized compression flag position %q", s)
	}
}

// formatCompressionFlags is the inverse of parseCompressionFlags, used when
// writing a .properties sidecar for a freshly compressed graph.
func formatCompressionFlags(c *Config) string {
	names := [5]string{"OUTDEGREES", "REFERENCES", "BLOCKS", "INTERVALS", "RESIDUALS"}
	var toks []string
	for p := code.Position(0); p < code.Position(code.NumPositions); p++ {
		toks = append(toks, fmt.Sprintf("%s_%s", names[p], c.code.Kinds[p]))
	}
	return strings.Join(toks, "|")
}

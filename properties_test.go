// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/code"
)

// TestPropertiesRoundTrip covers both endiannesses' Marshal/ParseProperties
// round trip, including the compressionflags token list (§6.1).
func TestPropertiesRoundTrip(t *testing.T) {
	for _, order := range []bitio.Order{bitio.MSB, bitio.LSB} {
		cfg := mustConfig(t, Options{
			Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 5, Order: order,
		})
		p := NewProperties(1234, 5678, cfg)
		p.Extra["comment"] = "generated by a test"

		var buf bytes.Buffer
		if err := p.Marshal(&buf); err != nil {
			t.Fatalf("Marshal: %v", err)
		}

		got, err := ParseProperties(buf.Bytes())
		if err != nil {
			t.Fatalf("ParseProperties: %v", err)
		}
		if got.Nodes != 1234 || got.Arcs != 5678 {
			t.Fatalf("Nodes/Arcs = %d/%d, want 1234/5678", got.Nodes, got.Arcs)
		}
		if got.Extra["comment"] != "generated by a test" {
			t.Fatalf("Extra[comment] = %q, want preserved", got.Extra["comment"])
		}
		gc := got.Config()
		if gc.Window != cfg.Window || gc.MinIntervalLength != cfg.MinIntervalLength ||
			gc.MaxRefCount != cfg.MaxRefCount || gc.Order != cfg.Order {
			t.Fatalf("round-tripped config = %+v, want %+v", gc, cfg)
		}
	}
}

// TestPropertiesVersionEndiannessMismatch covers §6.1's "mismatch is a fatal
// load error": endianness=big-endian requires version=0, little-endian
// requires version=1.
func TestPropertiesVersionEndiannessMismatch(t *testing.T) {
	text := "nodes=1\narcs=0\nversion=1\nendianness=big-endian\n" +
		"windowsize=7\nmaxrefcount=3\nminintervallength=4\nzetak=3\ncompressionflags=\n"
	_, err := ParseProperties([]byte(text))
	if err == nil {
		t.Fatal("expected error for version/endianness mismatch, got nil")
	}
	be, ok := err.(*Error)
	if !ok || be.Kind != ConfigParse {
		t.Fatalf("err = %v (%T), want *Error with Kind ConfigParse", err, err)
	}
}

// TestPropertiesUnrecognizedEndianness covers the "unrecognized endianness"
// branch of ParseProperties.
func TestPropertiesUnrecognizedEndianness(t *testing.T) {
	text := "nodes=1\narcs=0\nversion=0\nendianness=middle-endian\n" +
		"windowsize=7\nmaxrefcount=3\nminintervallength=4\nzetak=3\ncompressionflags=\n"
	_, err := ParseProperties([]byte(text))
	if err == nil {
		t.Fatal("expected error for unrecognized endianness, got nil")
	}
	if !strings.Contains(err.Error(), "endianness") {
		t.Fatalf("err = %v, want mention of endianness", err)
	}
}

// TestPropertiesCompressionFlagsRoundTrip checks that a non-default Kinds
// map marshals to an explicit compressionflags line and parses back to the
// same Config.
func TestPropertiesCompressionFlagsRoundTrip(t *testing.T) {
	kinds := map[code.Position]code.Kind{
		code.Outdegrees: code.Delta,
		code.References: code.Gamma,
		code.Residuals:  code.Zeta,
	}
	cfg := mustConfig(t, Options{
		Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 4,
		Order: bitio.MSB, Kinds: kinds,
	})
	p := NewProperties(10, 20, cfg)

	var buf bytes.Buffer
	if err := p.Marshal(&buf); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	hasFlags := false
	for _, line := range strings.Split(buf.String(), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok && strings.TrimSpace(k) == "compressionflags" && strings.TrimSpace(v) != "" {
			hasFlags = true
		}
	}
	if !hasFlags {
		t.Fatalf(".properties text missing compressionflags key:\n%s", buf.String())
	}

	got, err := ParseProperties(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseProperties: %v", err)
	}
	gc := got.Config()
	if gc.code.ZetaK != 4 {
		t.Fatalf("round-tripped zetaK = %d, want 4", gc.code.ZetaK)
	}
	for p, want := range kinds {
		if got := gc.code.Kinds[p]; got != want {
			t.Fatalf("round-tripped kind for %v = %v, want %v", p, got, want)
		}
	}
}

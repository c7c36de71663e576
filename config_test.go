// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"testing"

	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/code"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Window != 7 || cfg.MinIntervalLength != 4 || cfg.MaxRefCount != 3 {
		t.Fatalf("DefaultConfig = %+v, want Window=7 MinIntervalLength=4 MaxRefCount=3", cfg)
	}
	if cfg.Order != bitio.MSB {
		t.Fatalf("DefaultConfig.Order = %v, want MSB", cfg.Order)
	}
}

func TestNewConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		opts Options
	}{
		{"negative window", Options{Window: -1}},
		{"negative max-ref-count", Options{MaxRefCount: -1}},
		{"window without max-ref-count", Options{Window: 7, MaxRefCount: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewConfig(c.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			be, ok := err.(*Error)
			if !ok || be.Kind != Argument {
				t.Fatalf("err = %v (%T), want *Error with Kind Argument", err, err)
			}
		})
	}
}

func TestNewConfigWindowZeroAllowsZeroMaxRefCount(t *testing.T) {
	cfg, err := NewConfig(Options{Window: 0, MaxRefCount: 0})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Window != 0 {
		t.Fatalf("Window = %d, want 0", cfg.Window)
	}
}

func TestCompressionFlagsRoundTrip(t *testing.T) {
	cfg := mustConfig(t, Options{
		Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 3, Order: bitio.MSB,
		Kinds: map[code.Position]code.Kind{
			code.Outdegrees: code.Delta,
			code.Blocks:     code.Gamma,
			code.Intervals:  code.Gamma,
		},
	})
	flags := formatCompressionFlags(cfg)
	kinds, err := parseCompressionFlags(flags)
	if err != nil {
		t.Fatalf("parseCompressionFlags(%q): %v", flags, err)
	}
	for p, want := range map[code.Position]code.Kind{
		code.Outdegrees: code.Delta,
		code.References: code.Unary,
		code.Blocks:     code.Gamma,
		code.Intervals:  code.Gamma,
		code.Residuals:  code.Zeta,
	} {
		if got := kinds[p]; got != want {
			t.Fatalf("position %v = %v, want %v", p, got, want)
		}
	}
}

func TestParseCompressionFlagsEmpty(t *testing.T) {
	kinds, err := parseCompressionFlags("")
	if err != nil {
		t.Fatalf("parseCompressionFlags(\"\"): %v", err)
	}
	if len(kinds) != 0 {
		t.Fatalf("kinds = %v, want empty", kinds)
	}
}

func TestParseCompressionFlagsMalformed(t *testing.T) {
	cases := []string{
		"NOTAPOSITION_GAMMA",
		"OUTDEGREES_NOTAKIND",
		"OUTDEGREESGAMMA",
	}
	for _, s := range cases {
		if _, err := parseCompressionFlags(s); err == nil {
			t.Fatalf("parseCompressionFlags(%q): expected error, got nil", s)
		}
	}
}

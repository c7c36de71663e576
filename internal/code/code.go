// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package code implements the code dispatch layer (L1): the four
// instantaneous integer codes a BV-compressed graph can use for each of its
// five code positions (outdegree, reference, blocks, intervals, residuals),
// plus the closed-form length estimator the compressor's reference search
// needs without touching a stream.
//
// This mirrors the shape of the teacher's internal/prefix package: a single
// place holding the code engine that every format-specific (here,
// position-specific) user dispatches into, rather than each call site
// reimplementing unary/γ/δ/ζ by hand.
package code

import (
	"fmt"

	"github.com/webgraph-go/bvgraph/internal/bitio"
)

// Kind identifies one of the four instantaneous codes a position may use.
type Kind int

const (
	Unary Kind = iota
	Gamma
	Delta
	Zeta
)

func (k Kind) String() string {
	switch k {
	case Unary:
		return "UNARY"
	case Gamma:
		return "GAMMA"
	case Delta:
		return "DELTA"
	case Zeta:
		return "ZETA"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a properties-file token (§6.1) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "UNARY":
		return Unary, nil
	case "GAMMA":
		return Gamma, nil
	case "DELTA":
		return Delta, nil
	case "ZETA":
		return Zeta, nil
	default:
		return 0, fmt.Errorf("code: unrecognized compression flag kind %q", s)
	}
}

// Position names one of the five fields a node record carries (§3).
type Position int

const (
	Outdegrees Position = iota
	References
	Blocks
	Intervals
	Residuals
	numPositions
)

// NumPositions is the number of code positions a Config binds (§3): one
// each for outdegree, reference, blocks, intervals, and residuals.
const NumPositions = int(numPositions)

func (p Position) String() string {
	switch p {
	case Outdegrees:
		return "OUTDEGREES"
	case References:
		return "REFERENCES"
	case Blocks:
		return "BLOCKS"
	case Intervals:
		return "INTERVALS"
	case Residuals:
		return "RESIDUALS"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// DefaultKind returns the kind a position takes when its compressionflags
// token is absent, per §6.1: GAMMA for everything except REFERENCES
// (UNARY) and RESIDUALS (ZETA).
func (p Position) DefaultKind() Kind {
	switch p {
	case References:
		return Unary
	case Residuals:
		return Zeta
	default:
		return Gamma
	}
}

// Config binds each of the five positions to a code kind and a shared ζ
// parameter, and resolves dynamic dispatch functions once at load time (§4.1,
// §9 "Implementers should cache, per decoder instance, one function pointer
// per position").
type Config struct {
	Kinds  [numPositions]Kind
	ZetaK  int // in [1,7]; only consulted where a position resolves to Zeta
	reader [numPositions]func(bitio.Reader) (uint64, error)
	writer [numPositions]func(bitio.Writer, uint64) error
	length [numPositions]func(uint64) int
}

// NewConfig validates zetaK and builds the dispatch tables for kinds.
func NewConfig(kinds [numPositions]Kind, zetaK int) (*Config, error) {
	if zetaK < 1 || zetaK > 7 {
		return nil, fmt.Errorf("code: unsupported zeta parameter %d (must be in [1,7])", zetaK)
	}
	c := &Config{Kinds: kinds, ZetaK: zetaK}
	for p := Position(0); p < numPositions; p++ {
		r, w, l, err := dispatch(kinds[p], zetaK)
		if err != nil {
			return nil, err
		}
		c.reader[p], c.writer[p], c.length[p] = r, w, l
	}
	return c, nil
}

func dispatch(k Kind, zetaK int) (func(bitio.Reader) (uint64, error), func(bitio.Writer, uint64) error, func(uint64) int, error) {
	switch k {
	case Unary:
		return readUnary, writeUnary, lenUnary, nil
	case Gamma:
		return readGamma, writeGamma, lenGamma, nil
	case Delta:
		return readDelta, writeDelta, lenDelta, nil
	case Zeta:
		if zetaK == 1 {
			return readGamma, writeGamma, lenGamma, nil
		}
		k := zetaK
		return func(r bitio.Reader) (uint64, error) { return readZeta(r, k) },
			func(w bitio.Writer, v uint64) error { return writeZeta(w, v, k) },
			func(v uint64) int { return lenZeta(v, k) },
			nil
	default:
		return nil, nil, nil, fmt.Errorf("code: unknown code kind %v", k)
	}
}

// Read decodes the next value at the given position using the dynamic
// dispatch table (one dispatch per code read, per §4.1).
func (c *Config) Read(p Position, r bitio.Reader) (uint64, error) {
	return c.reader[p](r)
}

// Write emits v at the given position.
func (c *Config) Write(p Position, w bitio.Writer, v uint64) error {
	return c.writer[p](w, v)
}

// Len returns the number of bits Write would emit for v at the given
// position, without touching any stream (the encoder's estimator, §4.1).
func (c *Config) Len(p Position, v uint64) int {
	return c.length[p](v)
}

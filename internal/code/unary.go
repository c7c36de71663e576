// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package code

import "github.com/webgraph-go/bvgraph/internal/bitio"

// readUnary, writeUnary, lenUnary implement the unary code: k maps to k
// zero-bits then a one-bit (§4.1).
func readUnary(r bitio.Reader) (uint64, error) { return r.ReadUnary() }

func writeUnary(w bitio.Writer, v uint64) error { return w.WriteUnary(v) }

func lenUnary(v uint64) int { return int(v) + 1 }

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import "github.com/webgraph-go/bvgraph/internal/code"

// estimateNode computes the exact bit length encodeNode(cfg, _, v, s, r,
// refList) would produce, without touching any stream. The compressor's
// reference search (§4.5 steps 2-3) calls this once per candidate r to pick
// the cheapest one, so it must mirror encodeNode's field sequence exactly.
func estimateNode(cfg *Config, v int64, s []int64, r int64, refList []int64) int64 {
	d := int64(len(s))
	bits := int64(cfg.code.Len(code.Outdegrees, uint64(d)))
	if d == 0 {
		return bits
	}
	if cfg.Window > 0 {
		bits += int64(cfg.code.Len(code.References, uint64(r)))
	}

	var extras []int64
	var copiedCount int64
	if r > 0 {
		lengths, cc := computeBlocks(refList, s)
		bits += int64(cfg.code.Len(code.Blocks, uint64(len(lengths))))
		for _, l := range lengths {
			bits += int64(cfg.code.Len(code.Blocks, uint64(l)))
		}
		copiedCount = cc
		extras = setDiff(s, refList)
	} else {
		extras = s
	}

	intervals, residuals := computeIntervals(extras, cfg.MinIntervalLength)
	if d-copiedCount > 0 && cfg.MinIntervalLength > 0 {
		bits += estimateIntervals(cfg, v, intervals)
	}
	bits += estimateResiduals(cfg, v, residuals)
	return bits
}

func estimateIntervals(cfg *Config, v int64, intervals []interval) int64 {
	bits := int64(cfg.code.Len(code.Intervals, uint64(len(intervals))))
	if len(intervals) == 0 {
		return bits
	}
	first := intervals[0]
	bits += int64(cfg.code.Len(code.Intervals, code.IntToNat(first.left-v)))
	bits += int64(cfg.code.Len(code.Intervals, uint64(first.length-int64(cfg.MinIntervalLength))))
	prevLeft, prevLen := first.left, first.length
	for _, iv := range intervals[1:] {
		delta := iv.left - (prevLeft + prevLen) - 1
		bits += int64(cfg.code.Len(code.Intervals, uint64(delta)))
		bits += int64(cfg.code.Len(code.Intervals, uint64(iv.length-int64(cfg.MinIntervalLength))))
		prevLeft, prevLen = iv.left, iv.length
	}
	return bits
}

func estimateResiduals(cfg *Config, v int64, residuals []int64) int64 {
	if len(residuals) == 0 {
		return 0
	}
	bits := int64(cfg.code.Len(code.Residuals, code.IntToNat(residuals[0]-v)))
	for i := 1; i < len(residuals); i++ {
		gap := residuals[i] - residuals[i-1] - 1
		bits += int64(cfg.code.Len(code.Residuals, uint64(gap)))
	}
	return bits
}

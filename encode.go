// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/code"
)

// run is one maximal constant-value stretch of a copy/skip membership
// sequence, the unit computeBlocks works in before the bias described in
// §9 "Block-length biasing" is applied.
type run struct {
	copy   bool
	length int64
}

// membership reports, for each element of ref (in order), whether that
// value also appears in target. Both slices must be sorted and distinct.
func membership(ref, target []int64) []bool {
	out := make([]bool, len(ref))
	i := 0
	for k, v := range ref {
		for i < len(target) && target[i] < v {
			i++
		}
		out[k] = i < len(target) && target[i] == v
	}
	return out
}

// setDiff returns the elements of a not present in b. Both must be sorted
// and distinct.
func setDiff(a, b []int64) []int64 {
	out := make([]int64, 0, len(a))
	j := 0
	for _, v := range a {
		for j < len(b) && b[j] < v {
			j++
		}
		if j < len(b) && b[j] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

func runLengthEncode(bs []bool) []run {
	var runs []run
	for _, b := range bs {
		if len(runs) > 0 && runs[len(runs)-1].copy == b {
			runs[len(runs)-1].length++
			continue
		}
		runs = append(runs, run{copy: b, length: 1})
	}
	return runs
}

// computeBlocks derives the alternating copy/skip block list the encoder
// must write to express target as a reference against ref (§4.2 step 2).
// It returns the raw, already-biased block lengths (ready for
// cfg.code.Write at code.Blocks) and the number of target elements the
// resulting blocks select as copied.
func computeBlocks(ref, target []int64) (lengths []int64, copiedCount int64) {
	mem := membership(ref, target)
	for _, ok := range mem {
		if ok {
			copiedCount++
		}
	}
	runs := runLengthEncode(mem)
	if len(runs) > 0 && !runs[0].copy {
		runs = append([]run{{copy: true, length: 0}}, runs...)
	}
	if len(runs) > 0 && runs[len(runs)-1].copy {
		runs = runs[:len(runs)-1] // becomes the implicit trailing copy block
	}
	lengths = make([]int64, len(runs))
	for i, r := range runs {
		v := r.length
		if i > 0 {
			v-- // subsequent lengths are stored as raw+1 (§9)
		}
		lengths[i] = v
	}
	return lengths, copiedCount
}

// computeIntervals scans extras for maximal runs of consecutive integers of
// length >= L, returning the intervals and the leftover residuals in order
// (§4.2 step 4).
func computeIntervals(extras []int64, minLen int) ([]interval, []int64) {
	var intervals []interval
	var residuals []int64
	i := 0
	for i < len(extras) {
		j := i + 1
		for j < len(extras) && extras[j] == extras[j-1]+1 {
			j++
		}
		runLen := int64(j - i)
		if minLen > 0 && runLen >= int64(minLen) {
			intervals = append(intervals, interval{left: extras[i], length: runLen})
		} else {
			residuals = append(residuals, extras[i:j]...)
		}
		i = j
	}
	return intervals, residuals
}

func writeBlocks(cfg *Config, bw bitio.Writer, lengths []int64) error {
	if err := cfg.code.Write(code.Blocks, bw, uint64(len(lengths))); err != nil {
		return err
	}
	for _, l := range lengths {
		if err := cfg.code.Write(code.Blocks, bw, uint64(l)); err != nil {
			return err
		}
	}
	return nil
}

func writeIntervals(cfg *Config, bw bitio.Writer, v int64, intervals []interval) error {
	if err := cfg.code.Write(code.Intervals, bw, uint64(len(intervals))); err != nil {
		return err
	}
	if len(intervals) == 0 {
		return nil
	}
	first := intervals[0]
	if err := cfg.code.Write(code.Intervals, bw, code.IntToNat(first.left-v)); err != nil {
		return err
	}
	if err := cfg.code.Write(code.Intervals, bw, uint64(first.length-int64(cfg.MinIntervalLength))); err != nil {
		return err
	}
	prevLeft, prevLen := first.left, first.length
	for _, iv := range intervals[1:] {
		delta := iv.left - (prevLeft + prevLen) - 1
		if err := cfg.code.Write(code.Intervals, bw, uint64(delta)); err != nil {
			return err
		}
		if err := cfg.code.Write(code.Intervals, bw, uint64(iv.length-int64(cfg.MinIntervalLength))); err != nil {
			return err
		}
		prevLeft, prevLen = iv.left, iv.length
	}
	return nil
}

func writeResiduals(cfg *Config, bw bitio.Writer, v int64, residuals []int64) error {
	if len(residuals) == 0 {
		return nil
	}
	if err := cfg.code.Write(code.Residuals, bw, code.IntToNat(residuals[0]-v)); err != nil {
		return err
	}
	for i := 1; i < len(residuals); i++ {
		gap := residuals[i] - residuals[i-1] - 1
		if err := cfg.code.Write(code.Residuals, bw, uint64(gap)); err != nil {
			return err
		}
	}
	return nil
}

// encodeNode writes node v's record for successor list s, optionally
// referencing node v-r whose successor list is refList (r == 0 means no
// reference). It returns the number of bits the record occupied.
func encodeNode(cfg *Config, bw bitio.Writer, v int64, s []int64, r int64, refList []int64) (int64, error) {
	start := bw.BitPos()
	d := int64(len(s))
	if err := cfg.code.Write(code.Outdegrees, bw, uint64(d)); err != nil {
		return 0, err
	}
	if d == 0 {
		return bw.BitPos() - start, nil
	}
	if cfg.Window > 0 {
		if err := cfg.code.Write(code.References, bw, uint64(r)); err != nil {
			return 0, err
		}
	}

	var extras []int64
	var copiedCount int64
	if r > 0 {
		lengths, cc := computeBlocks(refList, s)
		if err := writeBlocks(cfg, bw, lengths); err != nil {
			return 0, err
		}
		copiedCount = cc
		extras = setDiff(s, refList)
	} else {
		extras = s
	}

	intervals, residuals := computeIntervals(extras, cfg.MinIntervalLength)
	if d-copiedCount > 0 && cfg.MinIntervalLength > 0 {
		if err := writeIntervals(cfg, bw, v, intervals); err != nil {
			return 0, err
		}
	}
	if err := writeResiduals(cfg, bw, v, residuals); err != nil {
		return 0, err
	}
	return bw.BitPos() - start, nil
}

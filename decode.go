// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/code"
)

// block is one entry of a decoded copy/skip block list against a reference
// successor list (§3, §4.2).
type block struct {
	length int64
	isCopy bool
}

// interval is one decoded (left, length) run of consecutive successors
// (§4.2).
type interval struct {
	left, length int64
}

// readOutdegree reads the outdegree field, always present (§3).
func readOutdegree(cfg *Config, br bitio.Reader) (int64, error) {
	d, err := cfg.code.Read(code.Outdegrees, br)
	return int64(d), err
}

// readReference reads the reference-delta field, present when d > 0 and
// W > 0 (§3).
func readReference(cfg *Config, br bitio.Reader) (int64, error) {
	r, err := cfg.code.Read(code.References, br)
	return int64(r), err
}

// readBlockSpec reads the block-count field and, if nonzero, the raw block
// lengths (still carrying the "first raw, rest raw+1" bias; see
// expandBlocks), present when d > 0 and r > 0 (§3, §9 "Block-length
// biasing").
func readBlockSpec(cfg *Config, br bitio.Reader) (b int64, lengths []int64, err error) {
	bv, err := cfg.code.Read(code.Blocks, br)
	if err != nil {
		return 0, nil, err
	}
	b = int64(bv)
	if b == 0 {
		return 0, nil, nil
	}
	lengths = make([]int64, b)
	for i := int64(0); i < b; i++ {
		raw, err := cfg.code.Read(code.Blocks, br)
		if err != nil {
			return 0, nil, err
		}
		v := int64(raw)
		if i > 0 {
			v++
		}
		lengths[i] = v
	}
	return b, lengths, nil
}

// expandBlocks turns a raw block-length list into the fully-resolved block
// sequence against a reference list of length refLen: b == 0 means the
// entire reference list is one implicit copy block (§4.2 step 3); b > 0 and
// even appends the implicit trailing copy block to the end of the
// reference list (§9 "Implicit trailing block").
func expandBlocks(b int64, lengths []int64, refLen int64) []block {
	if b == 0 {
		return []block{{length: refLen, isCopy: true}}
	}
	blocks := make([]block, 0, b+1)
	var consumed int64
	for i, l := range lengths {
		blocks = append(blocks, block{length: l, isCopy: i%2 == 0})
		consumed += l
	}
	if b%2 == 0 {
		blocks = append(blocks, block{length: refLen - consumed, isCopy: true})
	}
	return blocks
}

// applyBlocks walks refList according to blocks, returning the concatenated
// copied subsequence and its length.
func applyBlocks(refList []int64, blocks []block) ([]int64, int64) {
	var copied []int64
	var pos, count int64
	for _, blk := range blocks {
		seg := refList[pos : pos+blk.length]
		if blk.isCopy {
			copied = append(copied, seg...)
			count += blk.length
		}
		pos += blk.length
	}
	return copied, count
}

// readIntervals reads the interval-count field and, if nonzero, the k
// (left, length) pairs, present when extras > 0 and L > 0 (§3, §4.2 step
// 4). v is the node being decoded; interval lefts are relative to it.
func readIntervals(cfg *Config, br bitio.Reader, v int64) ([]interval, error) {
	kv, err := cfg.code.Read(code.Intervals, br)
	if err != nil {
		return nil, err
	}
	k := int64(kv)
	if k == 0 {
		return nil, nil
	}
	intervals := make([]interval, k)

	rawLeft, err := cfg.code.Read(code.Intervals, br)
	if err != nil {
		return nil, err
	}
	rawLen, err := cfg.code.Read(code.Intervals, br)
	if err != nil {
		return nil, err
	}
	left := v + code.NatToInt(rawLeft)
	length := int64(rawLen) + int64(cfg.MinIntervalLength)
	intervals[0] = interval{left, length}

	for i := int64(1); i < k; i++ {
		rawDelta, err := cfg.code.Read(code.Intervals, br)
		if err != nil {
			return nil, err
		}
		rawLen, err := cfg.code.Read(code.Intervals, br)
		if err != nil {
			return nil, err
		}
		left = left + length + int64(rawDelta) + 1
		length = int64(rawLen) + int64(cfg.MinIntervalLength)
		intervals[i] = interval{left, length}
	}
	return intervals, nil
}

func expandIntervals(intervals []interval) []int64 {
	var n int64
	for _, iv := range intervals {
		n += iv.length
	}
	out := make([]int64, 0, n)
	for _, iv := range intervals {
		for x := iv.left; x < iv.left+iv.length; x++ {
			out = append(out, x)
		}
	}
	return out
}

// readResiduals reads count residual successors: the first relative to v
// via the signed-nat transform, each subsequent one a raw+1 gap from the
// previous (§3, §4.2 step 5).
func readResiduals(cfg *Config, br bitio.Reader, v int64, count int64) ([]int64, error) {
	if count == 0 {
		return nil, nil
	}
	res := make([]int64, count)
	raw, err := cfg.code.Read(code.Residuals, br)
	if err != nil {
		return nil, err
	}
	x := v + code.NatToInt(raw)
	res[0] = x
	for i := int64(1); i < count; i++ {
		raw, err := cfg.code.Read(code.Residuals, br)
		if err != nil {
			return nil, err
		}
		x += int64(raw) + 1
		res[i] = x
	}
	return res, nil
}

// mergeSorted3 merges up to three already-sorted, mutually-disjoint slices
// into one strictly increasing slice (§4.2 step 6, §4.3 "merge").
func mergeSorted3(a, b, c []int64) []int64 {
	out := make([]int64, 0, len(a)+len(b)+len(c))
	i, j, k := 0, 0, 0
	const inf = int64(1) << 62
	next := func(xs []int64, idx int) int64 {
		if idx < len(xs) {
			return xs[idx]
		}
		return inf
	}
	for i < len(a) || j < len(b) || k < len(c) {
		va, vb, vc := next(a, i), next(b, j), next(c, k)
		switch {
		case va <= vb && va <= vc:
			out = append(out, va)
			i++
		case vb <= va && vb <= vc:
			out = append(out, vb)
			j++
		default:
			out = append(out, vc)
			k++
		}
	}
	return out
}

// resolver looks up a predecessor's successor list by node id, used to
// satisfy a reference during decode. The sequential decoder backs it with
// a rolling window cache (NodeIterator.cache); the random-access decoder
// backs it with a fresh recursive decode (iterator.go).
type resolver func(u int64) ([]int64, error)

// decodeNode decodes node v's full successor list from br, which must be
// positioned at the start of v's record. resolve supplies the successor
// list of any node v's record references (§4.2).
func decodeNode(cfg *Config, br bitio.Reader, v int64, resolve resolver) (list []int64, err error) {
	defer errRecover(&err)
	d, err := readOutdegree(cfg, br)
	if err != nil {
		return nil, err
	}
	if d == 0 {
		return nil, nil
	}

	var r int64
	if cfg.Window > 0 {
		r, err = readReference(cfg, br)
		if err != nil {
			return nil, err
		}
	}

	var copied []int64
	var copiedCount int64
	if r > 0 {
		u := v - r
		refList, err := resolve(u)
		if err != nil {
			return nil, err
		}
		b, lengths, err := readBlockSpec(cfg, br)
		if err != nil {
			return nil, err
		}
		blocks := expandBlocks(b, lengths, int64(len(refList)))
		copied, copiedCount = applyBlocks(refList, blocks)
	}

	extrasTarget := d - copiedCount
	var intervals []interval
	if extrasTarget > 0 && cfg.MinIntervalLength > 0 {
		intervals, err = readIntervals(cfg, br, v)
		if err != nil {
			return nil, err
		}
	}
	var intervalSum int64
	for _, iv := range intervals {
		intervalSum += iv.length
	}

	residualCount := d - copiedCount - intervalSum
	if residualCount < 0 {
		return nil, errorf(Corruption, "bvgraph: decode", v, "residual count %d is negative", residualCount)
	}
	residuals, err := readResiduals(cfg, br, v, residualCount)
	if err != nil {
		return nil, err
	}

	result := mergeSorted3(copied, expandIntervals(intervals), residuals)
	assertf(int64(len(result)) == d, Corruption, "bvgraph: decode", v,
		"merged %d successors, want declared outdegree %d", len(result), d)
	return result, nil
}

// NodeIterator scans a graph's node records in increasing order, caching
// the last cfg.Window+1 decoded lists so a node's reference field can be
// resolved without re-decoding from scratch (§4.2 "implementers should
// cache up to W most recent lists while scanning").
type NodeIterator struct {
	g    *graph
	br   bitio.Reader
	next int64 // next node id to decode

	cache map[int64][]int64
}

// HasNext reports whether another node remains.
func (it *NodeIterator) HasNext() bool { return it.next < it.g.numNode }

// Next decodes and returns the next node's id and successor list.
func (it *NodeIterator) Next() (int64, []int64, error) {
	if !it.HasNext() {
		return 0, nil, errorf(State, "bvgraph: iterate", it.next, "no more nodes")
	}
	v := it.next
	if it.cache == nil {
		it.cache = make(map[int64][]int64)
	}
	resolve := func(u int64) ([]int64, error) {
		if list, ok := it.cache[u]; ok {
			return list, nil
		}
		return nil, errorf(Corruption, "bvgraph: iterate", v, "reference to node %d outside cached window", u)
	}
	list, err := decodeNode(it.g.cfg, it.br, v, resolve)
	if err != nil {
		return 0, nil, errWrap(Corruption, "bvgraph: decode", v, err)
	}
	it.cache[v] = list
	delete(it.cache, v-int64(it.g.cfg.Window)-1)
	it.next++
	return v, list, nil
}

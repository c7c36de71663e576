// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/code"
)

// SuccessorIterator is the random-access layer's lazy, recursively merging
// successor iterator (§4.3). It holds three cursors — a nested masked
// iterator over a referenced node's own successors, an eagerly
// materialized slice of intervals, and a lazily-decoded residual stream —
// and each Next() returns whichever cursor currently holds the smallest
// value. Unlike decodeNode's eager sequential path, it never materializes
// a referenced node's full successor list: copied values are pulled one at
// a time through maskedIterator, which itself may recurse up to
// MaxRefCount levels deep (§9 "Recursive successor iteration").
type SuccessorIterator struct {
	g *graph
	v int64
	d int64

	copied *maskedIterator

	intervals   []interval
	intervalIdx int
	intervalVal int64
	intervalLen int64

	residualsLeft   int64
	residualStarted bool
	nextResidual    int64
	br              bitio.Reader

	curCopied   int64
	curInterval int64
	curResidual int64
	hasCopied   bool
	hasInterval bool
	hasResidual bool
	emitted     int64
}

// degreeAt reads only the outdegree field of node u: the outdegree is
// always stored explicitly regardless of whether u itself is encoded by
// reference, so this never requires decoding u's reference chain (§3).
func degreeAt(g *graph, u int64) (int64, error) {
	pos, err := g.offsets.Get(u)
	if err != nil {
		return 0, err
	}
	br := g.newReader()
	if err := br.SetBitPos(pos); err != nil {
		return 0, err
	}
	return readOutdegree(g.cfg, br)
}

// NewSuccessorIterator constructs the random-access iterator for node v.
// depth counts reference-chain nesting and guards against a corrupt stream
// recursing past MaxRefCount+1 levels.
func NewSuccessorIterator(g *graph, v int64, depth int) (*SuccessorIterator, error) {
	if g.cfg.MaxRefCount > 0 && depth > g.cfg.MaxRefCount+1 {
		return nil, errorf(Corruption, "bvgraph: random access", v,
			"reference chain exceeds max-ref-count %d", g.cfg.MaxRefCount)
	}
	pos, err := g.offsets.Get(v)
	if err != nil {
		return nil, err
	}
	br := g.newReader()
	if err := br.SetBitPos(pos); err != nil {
		return nil, err
	}

	it := &SuccessorIterator{g: g, v: v, br: br}
	d, err := readOutdegree(g.cfg, br)
	if err != nil {
		return nil, err
	}
	it.d = d
	if d == 0 {
		return it, nil
	}

	var r int64
	if g.cfg.Window > 0 {
		r, err = readReference(g.cfg, br)
		if err != nil {
			return nil, err
		}
	}

	var copiedCount int64
	if r > 0 {
		u := v - r
		refLen, err := degreeAt(g, u)
		if err != nil {
			return nil, err
		}
		b, lengths, err := readBlockSpec(g.cfg, br)
		if err != nil {
			return nil, err
		}
		blocks := expandBlocks(b, lengths, refLen)
		for _, blk := range blocks {
			if blk.isCopy {
				copiedCount += blk.length
			}
		}
		child, err := NewSuccessorIterator(g, u, depth+1)
		if err != nil {
			return nil, err
		}
		it.copied = &maskedIterator{child: child, blocks: blocks}
	}

	extrasTarget := d - copiedCount
	if extrasTarget > 0 && g.cfg.MinIntervalLength > 0 {
		intervals, err := readIntervals(g.cfg, br, v)
		if err != nil {
			return nil, err
		}
		it.intervals = intervals
	}
	var intervalSum int64
	for _, iv := range it.intervals {
		intervalSum += iv.length
	}

	it.residualsLeft = d - copiedCount - intervalSum
	if it.residualsLeft < 0 {
		return nil, errorf(Corruption, "bvgraph: random access", v,
			"residual count %d is negative", it.residualsLeft)
	}
	return it, nil
}

func (it *SuccessorIterator) fillCopied() error {
	if it.hasCopied || it.copied == nil {
		return nil
	}
	val, ok, err := it.copied.Next()
	if err != nil {
		return err
	}
	if ok {
		it.curCopied = val
		it.hasCopied = true
	} else {
		it.copied = nil
	}
	return nil
}

func (it *SuccessorIterator) fillInterval() {
	if it.hasInterval {
		return
	}
	for it.intervalLen == 0 {
		if it.intervalIdx >= len(it.intervals) {
			return
		}
		iv := it.intervals[it.intervalIdx]
		it.intervalIdx++
		it.intervalVal = iv.left
		it.intervalLen = iv.length
	}
	it.curInterval = it.intervalVal
	it.hasInterval = true
}

// fillResidual lazily decodes one more residual code, the first relative
// to v and each subsequent one a raw+1 gap from the last (§4.2 step 5).
func (it *SuccessorIterator) fillResidual() error {
	if it.hasResidual || it.residualsLeft == 0 {
		return nil
	}
	raw, err := it.g.cfg.code.Read(code.Residuals, it.br)
	if err != nil {
		return err
	}
	if !it.residualStarted {
		it.nextResidual = it.v + code.NatToInt(raw)
		it.residualStarted = true
	} else {
		it.nextResidual += int64(raw) + 1
	}
	it.curResidual = it.nextResidual
	it.hasResidual = true
	it.residualsLeft--
	return nil
}

// Next returns v's next successor in increasing order, and false once
// exactly d values have been returned.
func (it *SuccessorIterator) Next() (int64, bool, error) {
	if it.emitted >= it.d {
		return 0, false, nil
	}
	if err := it.fillCopied(); err != nil {
		return 0, false, err
	}
	it.fillInterval()
	if err := it.fillResidual(); err != nil {
		return 0, false, err
	}

	best := int64(1) << 62
	which := 0
	if it.hasCopied && it.curCopied < best {
		best, which = it.curCopied, 1
	}
	if it.hasInterval && it.curInterval < best {
		best, which = it.curInterval, 2
	}
	if it.hasResidual && it.curResidual < best {
		best, which = it.curResidual, 3
	}

	switch which {
	case 1:
		it.hasCopied = false
	case 2:
		it.hasInterval = false
		it.intervalVal++
		it.intervalLen--
	case 3:
		it.hasResidual = false
	default:
		return 0, false, errorf(Corruption, "bvgraph: random access", it.v,
			"successor stream exhausted before reaching declared outdegree")
	}
	it.emitted++
	return best, true, nil
}

// maskedIterator filters a predecessor's (child) successor stream down to
// just the values its copy blocks select, discarding the rest (§4.3
// "Masked iterator").
type maskedIterator struct {
	child   *SuccessorIterator
	blocks  []block
	curLeft int64 // remaining items in the block currently being consumed
	curCopy bool
}

func (m *maskedIterator) Next() (int64, bool, error) {
	for {
		if m.curLeft == 0 {
			if len(m.blocks) == 0 {
				return 0, false, nil
			}
			m.curLeft = m.blocks[0].length
			m.curCopy = m.blocks[0].isCopy
			m.blocks = m.blocks[1:]
			if m.curLeft == 0 {
				continue
			}
		}
		val, ok, err := m.child.Next()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		m.curLeft--
		if m.curCopy {
			return val, true, nil
		}
	}
}

// Successors drains a fresh SuccessorIterator for v into a slice. Most
// callers want the whole list; the lazy iterator exists so a caller who
// only wants the first few successors (or the degree) need not pay to
// decode the rest.
func (g *graph) Successors(v int64) ([]int64, error) {
	if g.offsets == nil {
		return nil, errorf(State, "bvgraph: successors", v, "graph was not loaded with random access")
	}
	it, err := NewSuccessorIterator(g, v, 0)
	if err != nil {
		return nil, errWrap(Corruption, "bvgraph: successors", v, err)
	}
	out := make([]int64, 0, it.d)
	for {
		val, ok, err := it.Next()
		if err != nil {
			return nil, errWrap(Corruption, "bvgraph: successors", v, err)
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

// Degree returns v's outdegree by reading just its outdegree field.
func (g *graph) Degree(v int64) (int, error) {
	if g.offsets == nil {
		return 0, errorf(State, "bvgraph: degree", v, "graph was not loaded with random access")
	}
	d, err := degreeAt(g, v)
	if err != nil {
		return 0, errWrap(IO, "bvgraph: degree", v, err)
	}
	return int(d), nil
}

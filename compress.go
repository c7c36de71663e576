// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"container/heap"

	"github.com/JekaMas/workerpool"

	"github.com/webgraph-go/bvgraph/internal/bitio"
	"github.com/webgraph-go/bvgraph/internal/progress"
)

// CompressOptions tunes the compressor beyond the codec Config (§4.5).
type CompressOptions struct {
	// LookAhead, if > 0, buffers that many future nodes and assigns their
	// references with one globally-greedy pass instead of the per-node
	// baseline rule. 0 selects the baseline greedy variant.
	LookAhead int
	// Ranges, if > 1, partitions the graph into that many contiguous
	// node ranges and compresses each independently in its own goroutine,
	// forbidding cross-range references (§4.5 "Parallel compression").
	Ranges int
	// Progress receives phase updates; nil selects progress.NoOp.
	Progress progress.Logger
	// DegreeCumulative, when set, receives a γ-gap-coded cumulative
	// outdegree after every node, producing the .dcf sidecar (§6.1, §13).
	// It is written whenever it is non-nil; Config.EmitDegreeCumulativeFile
	// is not consulted.
	DegreeCumulative *OffsetsWriter
}

func (o CompressOptions) logger() progress.Logger {
	if o.Progress == nil {
		return progress.NoOp
	}
	return o.Progress
}

// window is the compressor's rolling state over the last W+1 successor
// lists and their reference-chain depths (§4.5 "State").
type window struct {
	cfg  *Config
	v0   int64 // first node id this window's search may reach back to
	w    int64 // cfg.Window as int64, cached
	buf  [][]int64
	refD []int64
}

func newWindow(cfg *Config, v0 int64) *window {
	w := int64(cfg.Window)
	return &window{
		cfg:  cfg,
		v0:   v0,
		w:    w,
		buf:  make([][]int64, w+1),
		refD: make([]int64, w+1),
	}
}

func (win *window) slot(v int64) int64 {
	if win.w+1 == 0 {
		return 0
	}
	m := v % (win.w + 1)
	if m < 0 {
		m += win.w + 1
	}
	return m
}

func (win *window) store(v int64, s []int64, depth int64) {
	if win.w == 0 {
		return
	}
	idx := win.slot(v)
	win.buf[idx] = s
	win.refD[idx] = depth
}

// lookup returns node u's buffered list and reference depth, or ok=false if
// it has fallen out of the window or isn't buffered (e.g. slot reused by a
// more recent node than u).
func (win *window) lookup(u int64) (list []int64, depth int64, ok bool) {
	if win.w == 0 || u < win.v0 {
		return nil, 0, false
	}
	idx := win.slot(u)
	if win.buf[idx] == nil {
		return nil, 0, false
	}
	return win.buf[idx], win.refD[idx], true
}

// bestReference runs the estimator for r=0 and every in-window candidate
// r=δ, returning the cheapest (§4.5 steps 2-4). refList is nil when r==0.
func bestReference(cfg *Config, win *window, v int64, s []int64) (r int64, refList []int64, bits int64) {
	bestR, bestBits := int64(0), estimateNode(cfg, v, s, 0, nil)
	maxDelta := win.w
	if span := v - win.v0; span < maxDelta {
		maxDelta = span
	}
	var bestRef []int64
	for delta := int64(1); delta <= maxDelta; delta++ {
		u := v - delta
		ref, depth, ok := win.lookup(u)
		if !ok {
			continue
		}
		if cfg.MaxRefCount > 0 && depth >= int64(cfg.MaxRefCount) {
			continue
		}
		cand := estimateNode(cfg, v, s, delta, ref)
		if cand < bestBits {
			bestBits, bestR, bestRef = cand, delta, ref
		}
	}
	return bestR, bestRef, bestBits
}

// CompressSequential runs the baseline (or look-ahead, when
// opts.LookAhead > 0) greedy compressor over src, writing node records to
// bw and offsets to ow. v0 lets a caller compress a sub-range of a larger
// graph (§4.5 step 3 "to support split-range compression").
func CompressSequential(cfg *Config, src AdjacencySource, bw bitio.Writer, ow *OffsetsWriter, v0 int64, opts CompressOptions) error {
	if opts.LookAhead > 0 {
		return compressLookAhead(cfg, src, bw, ow, v0, opts)
	}
	return compressGreedy(cfg, src, bw, ow, v0, opts)
}

func compressGreedy(cfg *Config, src AdjacencySource, bw bitio.Writer, ow *OffsetsWriter, v0 int64, opts CompressOptions) (err error) {
	defer errRecover(&err)
	log := opts.logger()
	total := src.NumNodes()
	log.Start("compress", total)
	defer log.Done("compress")

	win := newWindow(cfg, v0)
	var cumDegree int64
	it := src.Iterator()
	for it.HasNext() {
		v, s, err := it.Next()
		if err != nil {
			return errWrap(IO, "bvgraph: compress", v, err)
		}
		if err := ow.Put(bw.BitPos()); err != nil {
			return err
		}
		r, refList, estBits := bestReference(cfg, win, v, s)
		bits, err := encodeNode(cfg, bw, v, s, r, refList)
		if err != nil {
			return errWrap(IO, "bvgraph: compress", v, err)
		}
		assertf(bits == estBits, Corruption, "bvgraph: compress", v,
			"encoder wrote %d bits, estimator predicted %d", bits, estBits)
		depth := int64(0)
		if r != 0 {
			_, refDepth, _ := win.lookup(v - r)
			depth = refDepth + 1
		}
		win.store(v, s, depth)
		if opts.DegreeCumulative != nil {
			if err := opts.DegreeCumulative.Put(cumDegree); err != nil {
				return err
			}
		}
		cumDegree += int64(len(s))
		log.Update("compress", v-v0+1)
	}
	if opts.DegreeCumulative != nil {
		if err := opts.DegreeCumulative.Put(cumDegree); err != nil {
			return err
		}
	}
	return ow.Put(bw.BitPos())
}

// candidateArc is one (savings, δ, node) option the look-ahead variant's
// heap ranks; savings is c0 - cδ, the bits saved by referencing δ instead
// of encoding raw (§4.5 "look-ahead").
type candidateArc struct {
	savings int64
	delta   int64
	bufIdx  int
	refList []int64
}

// arcHeap is a max-heap on savings (ties favor smaller δ), the "heap of
// candidate (savings, δ, buf_index) arcs, largest savings first" the
// look-ahead variant is specified to use.
type arcHeap []candidateArc

func (h arcHeap) Len() int { return len(h) }
func (h arcHeap) Less(i, j int) bool {
	if h[i].savings != h[j].savings {
		return h[i].savings > h[j].savings
	}
	return h[i].delta < h[j].delta
}
func (h arcHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *arcHeap) Push(x any)   { *h = append(*h, x.(candidateArc)) }
func (h *arcHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// compressLookAhead buffers up to opts.LookAhead future nodes, then assigns
// all of their δ in one globally-greedy pass: every buffered node's
// candidate references (against both the already-flushed window and
// earlier nodes still in the buffer) are pushed onto a max-heap, and arcs
// are popped largest-savings-first, each claiming its node only if that
// node has no assignment yet and the depth cap still allows it (§4.5
// "look-ahead"). The oldest node is written only once the whole buffer's
// assignments are fixed.
func compressLookAhead(cfg *Config, src AdjacencySource, bw bitio.Writer, ow *OffsetsWriter, v0 int64, opts CompressOptions) (err error) {
	defer errRecover(&err)
	log := opts.logger()
	total := src.NumNodes()
	log.Start("compress", total)
	defer log.Done("compress")

	A := opts.LookAhead
	win := newWindow(cfg, v0)

	type pending struct {
		v, r    int64
		s       []int64
		refList []int64
		bits    int64 // bit length the assigned (r, refList) is predicted to cost
	}

	resolveBatch := func(buf []pending) {
		h := &arcHeap{}
		heap.Init(h)
		for i, p := range buf {
			maxDelta := win.w
			if span := p.v - v0; span < maxDelta {
				maxDelta = span
			}
			c0 := estimateNode(cfg, p.v, p.s, 0, nil)
			buf[i].r, buf[i].refList, buf[i].bits = 0, nil, c0
			for delta := int64(1); delta <= maxDelta; delta++ {
				u := p.v - delta
				var ref []int64
				var depth int64
				if u < buf[0].v {
					list, d, ok := win.lookup(u)
					if !ok {
						continue
					}
					ref, depth = list, d
				} else {
					j := int(u - buf[0].v)
					if j < 0 || j >= i {
						continue
					}
					ref, depth = buf[j].s, 0
				}
				if cfg.MaxRefCount > 0 && depth >= int64(cfg.MaxRefCount) {
					continue
				}
				cand := estimateNode(cfg, p.v, p.s, delta, ref)
				if savings := c0 - cand; savings > 0 {
					heap.Push(h, candidateArc{savings: savings, delta: delta, bufIdx: i, refList: ref})
				}
			}
		}
		assigned := make([]bool, len(buf))
		for h.Len() > 0 {
			arc := heap.Pop(h).(candidateArc)
			if assigned[arc.bufIdx] {
				continue
			}
			p := &buf[arc.bufIdx]
			p.r, p.refList = arc.delta, arc.refList
			p.bits = estimateNode(cfg, p.v, p.s, p.r, p.refList)
			assigned[arc.bufIdx] = true
		}
	}

	var cumDegree int64
	flush := func(p pending) error {
		if err := ow.Put(bw.BitPos()); err != nil {
			return err
		}
		bits, err := encodeNode(cfg, bw, p.v, p.s, p.r, p.refList)
		if err != nil {
			return errWrap(IO, "bvgraph: compress", p.v, err)
		}
		assertf(bits == p.bits, Corruption, "bvgraph: compress", p.v,
			"encoder wrote %d bits, estimator predicted %d", bits, p.bits)
		depth := int64(0)
		if p.r != 0 {
			_, refDepth, _ := win.lookup(p.v - p.r)
			depth = refDepth + 1
		}
		win.store(p.v, p.s, depth)
		if opts.DegreeCumulative != nil {
			if err := opts.DegreeCumulative.Put(cumDegree); err != nil {
				return err
			}
		}
		cumDegree += int64(len(p.s))
		log.Update("compress", p.v-v0+1)
		return nil
	}

	var buf []pending
	it := src.Iterator()
	for it.HasNext() {
		v, s, err := it.Next()
		if err != nil {
			return errWrap(IO, "bvgraph: compress", v, err)
		}
		buf = append(buf, pending{v: v, s: s})
		if len(buf) > A {
			resolveBatch(buf)
			if err := flush(buf[0]); err != nil {
				return err
			}
			buf = buf[1:]
		}
	}
	// Drain the tail the same way: each node's reference is fixed while it
	// is the oldest in the buffer, when every candidate is already written
	// and its true depth is known.
	for len(buf) > 0 {
		resolveBatch(buf)
		if err := flush(buf[0]); err != nil {
			return err
		}
		buf = buf[1:]
	}
	if opts.DegreeCumulative != nil {
		if err := opts.DegreeCumulative.Put(cumDegree); err != nil {
			return err
		}
	}
	return ow.Put(bw.BitPos())
}

// rangeResult is one parallel worker's output: its node records, its local
// (range-relative) offsets, and the range's node bounds.
type rangeResult struct {
	idx        int
	start, end int64 // [start, end)
	data       []byte
	nbits      int64
	offsets    []int64 // len == end-start+1, local to this range
	err        error
}

// CompressParallel partitions src into opts.Ranges contiguous node ranges,
// compresses each independently (no cross-range references), then
// concatenates the resulting bitstreams and rewrites each range's local
// offsets to the graph's global bit positions (§4.5 "Parallel compression").
// It must first materialize every successor list in memory, since a
// AdjacencySource's Iterator can only be driven once per range and ranges
// run concurrently.
func CompressParallel(cfg *Config, src AdjacencySource, opts CompressOptions) ([]byte, *Offsets, error) {
	lists, err := loadAllLists(src)
	if err != nil {
		return nil, nil, err
	}
	n := int64(len(lists))

	if opts.DegreeCumulative != nil {
		var cumDegree int64
		for _, s := range lists {
			if err := opts.DegreeCumulative.Put(cumDegree); err != nil {
				return nil, nil, err
			}
			cumDegree += int64(len(s))
		}
		if err := opts.DegreeCumulative.Put(cumDegree); err != nil {
			return nil, nil, err
		}
	}
	p := opts.Ranges
	if p < 1 {
		p = 1
	}
	if int64(p) > n && n > 0 {
		p = int(n)
	}
	if n == 0 {
		p = 1
	}

	log := opts.logger()
	log.Start("compress-parallel", n)

	results := make([]rangeResult, p)
	wp := workerpool.New(p)
	chunk := n / int64(p)
	rem := n % int64(p)
	var cursor int64
	for i := 0; i < p; i++ {
		start := cursor
		size := chunk
		if int64(i) < rem {
			size++
		}
		end := start + size
		cursor = end
		i, start, end := i, start, end
		wp.Submit(func() {
			results[i] = compressRange(cfg, lists, i, start, end)
		})
	}
	wp.StopWait()

	for _, r := range results {
		if r.err != nil {
			return nil, nil, r.err
		}
	}

	var out []byte
	globalPos := make([]int64, 0, n+1)
	var bitBase int64
	for _, r := range results {
		out = append(out, r.data...)
		for _, local := range r.offsets[:len(r.offsets)-1] {
			globalPos = append(globalPos, bitBase+local)
		}
		bitBase += r.nbits
		log.Update("compress-parallel", r.end)
	}
	globalPos = append(globalPos, bitBase) // final sentinel
	log.Done("compress-parallel")

	offs := &Offsets{pos: globalPos}
	return out, offs, nil
}

func loadAllLists(src AdjacencySource) ([][]int64, error) {
	n := src.NumNodes()
	lists := make([][]int64, n)
	it := src.Iterator()
	for it.HasNext() {
		v, s, err := it.Next()
		if err != nil {
			return nil, err
		}
		lists[v] = s
	}
	return lists, nil
}

func compressRange(cfg *Config, lists [][]int64, idx int, start, end int64) rangeResult {
	var bw bitio.Writer
	if cfg.Order == bitio.LSB {
		bw = bitio.NewLSBWriter()
	} else {
		bw = bitio.NewMSBWriter()
	}

	local := make([]int64, 0, end-start+1)
	err := func() (err error) {
		defer errRecover(&err)
		win := newWindow(cfg, start)
		for v := start; v < end; v++ {
			s := lists[v]
			local = append(local, bw.BitPos())
			r, refList, estBits := bestReference(cfg, win, v, s)
			bits, err := encodeNode(cfg, bw, v, s, r, refList)
			if err != nil {
				return errWrap(IO, "bvgraph: compress", v, err)
			}
			assertf(bits == estBits, Corruption, "bvgraph: compress", v,
				"encoder wrote %d bits, estimator predicted %d", bits, estBits)
			depth := int64(0)
			if r != 0 {
				_, refDepth, _ := win.lookup(v - r)
				depth = refDepth + 1
			}
			win.store(v, s, depth)
		}
		return nil
	}()
	if err != nil {
		return rangeResult{idx: idx, start: start, end: end, err: err}
	}
	local = append(local, bw.BitPos())
	data := bw.Flush()
	return rangeResult{
		idx: idx, start: start, end: end,
		data: data, nbits: int64(len(data)) * 8, offsets: local,
	}
}

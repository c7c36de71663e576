// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/webgraph-go/bvgraph/internal/bitio"
)

// TestCompressLookAhead checks that the look-ahead variant, at several
// look-ahead sizes, produces a decodable graph equal to its input (§4.5
// "look-ahead").
func TestCompressLookAhead(t *testing.T) {
	lists := genRandomGraph(10, 60, 8)
	cfg := mustConfig(t, Options{Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 3, Order: bitio.MSB})

	for _, lookAhead := range []int{1, 4, 16} {
		g := compressToGraph(t, cfg, lists, CompressOptions{LookAhead: lookAhead})
		got := sequentialDecodeAll(t, g)
		assertListsEqual(t, got, lists, "look-ahead "+strconv.Itoa(lookAhead))
	}
}

// TestCompressParallel checks that splitting into several independent
// ranges still yields a graph that decodes to the same adjacency lists, both
// sequentially and at random access, and that the rewritten global offsets
// remain internally consistent (§4.5 "Parallel compression").
func TestCompressParallel(t *testing.T) {
	lists := genRandomGraph(11, 80, 8)
	cfg := mustConfig(t, Options{Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 3, Order: bitio.MSB})

	for _, ranges := range []int{1, 3, 7, 100} {
		data, offs, err := CompressParallel(cfg, NewListGraph(lists), CompressOptions{Ranges: ranges})
		if err != nil {
			t.Fatalf("ranges=%d: CompressParallel: %v", ranges, err)
		}
		if offs.Len() != int64(len(lists)) {
			t.Fatalf("ranges=%d: offs.Len() = %d, want %d", ranges, offs.Len(), len(lists))
		}
		last, err := offs.Get(offs.Len())
		if err != nil {
			t.Fatal(err)
		}
		// Ranges are concatenated byte-aligned, so the final sentinel must
		// equal exactly the total byte-aligned bit length of the buffer.
		if last != int64(len(data))*8 {
			t.Fatalf("ranges=%d: final offset %d, want %d (len(data)*8)", ranges, last, int64(len(data))*8)
		}

		g := &graph{cfg: cfg, stream: memStreamFor(data, last), numNode: int64(len(lists)), offsets: offs}
		got := sequentialDecodeAll(t, g)
		assertListsEqual(t, got, lists, "parallel ranges="+strconv.Itoa(ranges))

		ra := randomAccessDecodeAll(t, g)
		assertListsEqual(t, ra, lists, "parallel random access ranges="+strconv.Itoa(ranges))
	}
}

// memStreamFor wraps data as the wordStream graph needs, sized to nbits.
func memStreamFor(data []byte, nbits int64) wordStream {
	return memStreamShim{data: data, nbits: nbits}
}

type memStreamShim struct {
	data  []byte
	nbits int64
}

func (m memStreamShim) Bytes() []byte  { return m.data }
func (m memStreamShim) NumBits() int64 { return m.nbits }
func (m memStreamShim) Close() error   { return nil }

// TestCompressParallelNoCrossRangeReference checks the "no cross-range
// references" invariant directly: every node's chosen reference, if any,
// must resolve to a node in the same range.
func TestCompressParallelNoCrossRangeReference(t *testing.T) {
	lists := genRandomGraph(12, 40, 8)
	cfg := mustConfig(t, Options{Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 3, Order: bitio.MSB})

	ranges := 4
	n := int64(len(lists))
	chunk := n / int64(ranges)
	rem := n % int64(ranges)
	bounds := make([]int64, 0, ranges+1)
	var cursor int64
	for i := 0; i < ranges; i++ {
		bounds = append(bounds, cursor)
		size := chunk
		if int64(i) < rem {
			size++
		}
		cursor += size
	}
	bounds = append(bounds, n)
	rangeOf := func(v int64) int {
		for i := 0; i < ranges; i++ {
			if v >= bounds[i] && v < bounds[i+1] {
				return i
			}
		}
		return -1
	}

	data, offs, err := CompressParallel(cfg, NewListGraph(lists), CompressOptions{Ranges: ranges})
	if err != nil {
		t.Fatal(err)
	}
	g := &graph{cfg: cfg, stream: memStreamFor(data, offs.pos[len(offs.pos)-1]), numNode: n, offsets: offs}
	for v := int64(0); v < n; v++ {
		pos, err := offs.Get(v)
		if err != nil {
			t.Fatal(err)
		}
		br := g.newReader()
		if err := br.SetBitPos(pos); err != nil {
			t.Fatal(err)
		}
		d, err := readOutdegree(cfg, br)
		if err != nil {
			t.Fatal(err)
		}
		if d == 0 || cfg.Window == 0 {
			continue
		}
		r, err := readReference(cfg, br)
		if err != nil {
			t.Fatal(err)
		}
		if r == 0 {
			continue
		}
		if rangeOf(v-r) != rangeOf(v) {
			t.Fatalf("node %d (range %d) references node %d (range %d): cross-range reference",
				v, rangeOf(v), v-r, rangeOf(v-r))
		}
	}
}

// TestDegreeCumulativeFile checks the .dcf sidecar, produced the same way
// across the greedy, look-ahead, and parallel compressors (§6.1, §13).
func TestDegreeCumulativeFile(t *testing.T) {
	lists := genRandomGraph(13, 20, 5)
	cfg := mustConfig(t, Options{
		Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 3, Order: bitio.MSB,
		EmitDegreeCumulativeFile: true,
	})

	wantCum := make([]int64, len(lists)+1)
	for i, s := range lists {
		wantCum[i+1] = wantCum[i] + int64(len(s))
	}

	checkDCF := func(t *testing.T, dbw bitio.Writer) {
		t.Helper()
		data := dbw.Flush()
		offs, err := DecodeOffsets(data, int64(len(data))*8, bitio.MSB, int64(len(lists)))
		if err != nil {
			t.Fatalf("decode .dcf: %v", err)
		}
		for i, want := range wantCum {
			got, err := offs.Get(int64(i))
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Fatalf(".dcf[%d] = %d, want %d", i, got, want)
			}
		}
	}

	t.Run("greedy", func(t *testing.T) {
		var bw bitio.Writer = bitio.NewMSBWriter()
		var obw bitio.Writer = bitio.NewMSBWriter()
		var dbw bitio.Writer = bitio.NewMSBWriter()
		ow := NewOffsetsWriter(obw)
		dw := NewOffsetsWriter(dbw)
		err := CompressSequential(cfg, NewListGraph(lists), bw, ow, 0, CompressOptions{DegreeCumulative: dw})
		if err != nil {
			t.Fatal(err)
		}
		checkDCF(t, dbw)
	})

	t.Run("look-ahead", func(t *testing.T) {
		var bw bitio.Writer = bitio.NewMSBWriter()
		var obw bitio.Writer = bitio.NewMSBWriter()
		var dbw bitio.Writer = bitio.NewMSBWriter()
		ow := NewOffsetsWriter(obw)
		dw := NewOffsetsWriter(dbw)
		err := CompressSequential(cfg, NewListGraph(lists), bw, ow, 0,
			CompressOptions{LookAhead: 3, DegreeCumulative: dw})
		if err != nil {
			t.Fatal(err)
		}
		checkDCF(t, dbw)
	})

	t.Run("parallel", func(t *testing.T) {
		var dbw bitio.Writer = bitio.NewMSBWriter()
		dw := NewOffsetsWriter(dbw)
		_, _, err := CompressParallel(cfg, NewListGraph(lists), CompressOptions{Ranges: 3, DegreeCumulative: dw})
		if err != nil {
			t.Fatal(err)
		}
		checkDCF(t, dbw)
	})
}

// TestCompressAllNoLookAheadVariantsAgree checks that the greedy and
// look-ahead compressors, despite choosing different references, always
// produce a graph with identical decoded successor lists.
func TestCompressAllNoLookAheadVariantsAgree(t *testing.T) {
	lists := genRandomGraph(14, 25, 6)
	cfg := mustConfig(t, Options{Window: 7, MinIntervalLength: 4, MaxRefCount: 3, ZetaK: 3, Order: bitio.MSB})

	gGreedy := compressToGraph(t, cfg, lists, CompressOptions{})
	gLookAhead := compressToGraph(t, cfg, lists, CompressOptions{LookAhead: 8})

	got1 := sequentialDecodeAll(t, gGreedy)
	got2 := sequentialDecodeAll(t, gLookAhead)
	if diff := cmp.Diff(normalize(got1), normalize(got2)); diff != "" {
		t.Fatalf("greedy and look-ahead decode to different adjacency (-greedy +lookAhead):\n%s", diff)
	}
}

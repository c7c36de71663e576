// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package code

import (
	"math/rand"
	"testing"

	"github.com/webgraph-go/bvgraph/internal/bitio"
)

func TestCodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []Kind{Unary, Gamma, Delta, Zeta}
	for _, kind := range kinds {
		for _, zetaK := range []int{1, 2, 3, 7} {
			readFn, writeFn, lenFn, err := dispatch(kind, zetaK)
			if err != nil {
				t.Fatal(err)
			}

			maxVal := 1 << 20
			if kind == Unary {
				maxVal = 1 << 12
			}
			var values []uint64
			for i := 0; i < 200; i++ {
				values = append(values, uint64(rng.Intn(maxVal)))
			}

			bw := bitio.NewLSBWriter()
			for _, v := range values {
				if err := writeFn(bw, v); err != nil {
					t.Fatalf("kind=%v zetaK=%d write(%d): %v", kind, zetaK, v, err)
				}
			}
			data := bw.Flush()
			br := bitio.NewLSBReader(data, bw.BitPos())
			for i, v := range values {
				got, err := readFn(br)
				if err != nil {
					t.Fatalf("kind=%v zetaK=%d value %d: read: %v", kind, zetaK, i, err)
				}
				if got != v {
					t.Fatalf("kind=%v zetaK=%d value %d: got %d, want %d", kind, zetaK, i, got, v)
				}
			}

			// Length estimator must match actual bits emitted.
			for _, v := range values[:50] {
				bw2 := bitio.NewLSBWriter()
				if err := writeFn(bw2, v); err != nil {
					t.Fatal(err)
				}
				gotLen := int(bw2.BitPos())
				wantLen := lenFn(v)
				if gotLen != wantLen {
					t.Fatalf("kind=%v zetaK=%d value %d: length estimator = %d, actual = %d", kind, zetaK, v, wantLen, gotLen)
				}
			}
		}
	}
}

func TestSignedNatRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2, -2, 1000, -1000, 1 << 30, -(1 << 30)} {
		n := IntToNat(v)
		got := NatToInt(n)
		if got != v {
			t.Fatalf("IntToNat/NatToInt(%d) = %d via nat %d", v, got, n)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	var kinds [5]Kind
	for p := Position(0); p < numPositions; p++ {
		kinds[p] = p.DefaultKind()
	}
	if kinds[References] != Unary {
		t.Fatalf("default REFERENCES kind = %v, want UNARY", kinds[References])
	}
	if kinds[Residuals] != Zeta {
		t.Fatalf("default RESIDUALS kind = %v, want ZETA", kinds[Residuals])
	}
	if kinds[Outdegrees] != Gamma || kinds[Blocks] != Gamma || kinds[Intervals] != Gamma {
		t.Fatalf("default kinds for outdegree/blocks/intervals must be GAMMA")
	}
	if _, err := NewConfig(kinds, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(kinds, 8); err == nil {
		t.Fatal("expected error for zetaK=8")
	}
}

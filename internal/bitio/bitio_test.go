// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"math/rand"
	"testing"
)

func TestLSBRoundTrip(t *testing.T) {
	testRoundTrip(t, LSB)
}

func TestMSBRoundTrip(t *testing.T) {
	testRoundTrip(t, MSB)
}

func testRoundTrip(t *testing.T, order Order) {
	rng := rand.New(rand.NewSource(1))
	var widths []uint
	var values []uint64
	for i := 0; i < 2000; i++ {
		n := uint(rng.Intn(65))
		var v uint64
		if n > 0 {
			if n == 64 {
				v = rng.Uint64()
			} else {
				v = rng.Uint64() & (1<<n - 1)
			}
		}
		widths = append(widths, n)
		values = append(values, v)
	}

	var data []byte
	var bitLen int64
	if order == LSB {
		w := NewLSBWriter()
		for i, n := range widths {
			if err := w.WriteBits(values[i], n); err != nil {
				t.Fatalf("WriteBits: %v", err)
			}
		}
		bitLen = w.BitPos()
		data = w.Flush()
	} else {
		w := NewMSBWriter()
		for i, n := range widths {
			if err := w.WriteBits(values[i], n); err != nil {
				t.Fatalf("WriteBits: %v", err)
			}
		}
		bitLen = w.BitPos()
		data = w.Flush()
	}

	var r Reader
	if order == LSB {
		r = NewLSBReader(data, bitLen)
	} else {
		r = NewMSBReader(data, bitLen)
	}
	for i, n := range widths {
		got, err := r.ReadBits(n)
		if err != nil {
			t.Fatalf("value %d: ReadBits(%d): %v", i, n, err)
		}
		if got != values[i] {
			t.Fatalf("value %d: ReadBits(%d) = %#x, want %#x", i, n, got, values[i])
		}
	}
}

func TestUnaryRoundTrip(t *testing.T) {
	for _, order := range []Order{LSB, MSB} {
		ks := []uint64{0, 1, 2, 3, 7, 8, 63, 64, 65, 127, 200}
		var data []byte
		var bitLen int64
		if order == LSB {
			w := NewLSBWriter()
			for _, k := range ks {
				if err := w.WriteUnary(k); err != nil {
					t.Fatal(err)
				}
			}
			bitLen = w.BitPos()
			data = w.Flush()
		} else {
			w := NewMSBWriter()
			for _, k := range ks {
				if err := w.WriteUnary(k); err != nil {
					t.Fatal(err)
				}
			}
			bitLen = w.BitPos()
			data = w.Flush()
		}
		var r Reader
		if order == LSB {
			r = NewLSBReader(data, bitLen)
		} else {
			r = NewMSBReader(data, bitLen)
		}
		for i, k := range ks {
			got, err := r.ReadUnary()
			if err != nil {
				t.Fatalf("order %v, value %d: ReadUnary: %v", order, i, err)
			}
			if got != k {
				t.Fatalf("order %v, value %d: ReadUnary() = %d, want %d", order, i, got, k)
			}
		}
	}
}

func TestSeek(t *testing.T) {
	w := NewLSBWriter()
	w.WriteBits(0x3, 2)
	w.WriteBits(0x5, 3)
	w.WriteBits(0x7f, 7)
	data := w.Flush()
	r := NewLSBReader(data, w.BitPos())
	if err := r.SetBitPos(2); err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadBits(3)
	if err != nil || got != 0x5 {
		t.Fatalf("ReadBits after seek = %#x, %v, want 0x5", got, err)
	}
	if pos := r.BitPos(); pos != 5 {
		t.Fatalf("BitPos = %d, want 5", pos)
	}
}

// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package probetest provides helpers for writing table-driven tests
// against netlist boards.
package probetest

import (
	"testing"

	"github.com/probelab/netprobe"
)

// Pin names an input or output pin by label, with its expected width.
type Pin struct {
	Label string
	Bits  int
}

// Vector is one row of a combinational truth table: the values driven
// into the inputs and the values expected on the outputs, in the order
// the pins were given to Combinational.
type Vector struct {
	In  []uint64
	Out []uint64
}

// Combinational resolves the named pins on the board, then drives every
// input vector, evaluates, and compares the outputs. Resolution failures
// abort the test; value mismatches are reported per vector.
func Combinational(t *testing.T, b *netprobe.Board, ins, outs []Pin, vectors []Vector) {
	t.Helper()

	writers := make([]*netprobe.Writer, len(ins))
	for i, p := range ins {
		w, err := b.InputPin(p.Label, p.Bits)
		if err != nil {
			t.Fatal(err)
		}
		writers[i] = w
	}
	readers := make([]*netprobe.Reader, len(outs))
	for i, p := range outs {
		r, err := b.OutputPin(p.Label, p.Bits)
		if err != nil {
			t.Fatal(err)
		}
		readers[i] = r
	}

	for _, v := range vectors {
		if len(v.In) != len(ins) || len(v.Out) != len(outs) {
			t.Fatalf("vector %v: expected %d inputs and %d outputs", v, len(ins), len(outs))
		}
		for i, val := range v.In {
			if err := writers[i].Set(val); err != nil {
				t.Fatalf("set %s = %d: %v", ins[i].Label, val, err)
			}
		}
		if err := b.Session().Evaluate(); err != nil {
			t.Fatalf("evaluate %v: %v", v.In, err)
		}
		for i, want := range v.Out {
			got := readers[i].Get()
			if !got.Known || got.Bits != want {
				t.Errorf("inputs %v: %s = %s, expected %b", v.In, outs[i].Label, got, want)
			}
		}
	}
}

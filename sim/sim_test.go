// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package sim_test

import (
	"testing"

	"github.com/probelab/netprobe/netlist"
	"github.com/probelab/netprobe/sim"
)

// buildGate wires two input pins and an output pin around a single binary
// gate and returns the lot.
func buildGate(t *testing.T, op netlist.Op, bits int) (*sim.Engine, *netlist.Port, *netlist.Port, *netlist.Port) {
	t.Helper()

	a := netlist.NewInputPin("a", "A", bits)
	b := netlist.NewInputPin("b", "B", bits)
	g := netlist.NewGate("g0", op, bits)
	o := netlist.NewOutputPin("o", "Out", bits)

	board := netlist.NewBoard("main")
	for _, c := range []*netlist.Component{a, b, g, o} {
		if err := board.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	connect := func(p, q *netlist.Port) {
		if err := netlist.Connect(p, q); err != nil {
			t.Fatal(err)
		}
	}
	connect(a.Port(netlist.PortPin), g.Port(netlist.PortA))
	connect(b.Port(netlist.PortPin), g.Port(netlist.PortB))
	connect(g.Port(netlist.PortOut), o.Port(netlist.PortPin))

	nl := netlist.New()
	nl.AddBoard(board)
	return sim.New(nl), a.Port(netlist.PortPin), b.Port(netlist.PortPin), o.Port(netlist.PortPin)
}

func TestGates(t *testing.T) {
	tests := []struct {
		op      netlist.Op
		a, b, o uint64
	}{
		{netlist.OpAnd, 0b1100, 0b1010, 0b1000},
		{netlist.OpOr, 0b1100, 0b1010, 0b1110},
		{netlist.OpXor, 0b1100, 0b1010, 0b0110},
		{netlist.OpNand, 0b1100, 0b1010, 0b0111},
		{netlist.OpNor, 0b1100, 0b1010, 0b0001},
		{netlist.OpAdd, 0b0111, 0b0001, 0b1000},
		{netlist.OpAdd, 0b1111, 0b0001, 0b0000}, // modular
	}
	for _, tt := range tests {
		e, a, b, o := buildGate(t, tt.op, 4)
		if err := e.Drive(a, tt.a); err != nil {
			t.Fatal(err)
		}
		if err := e.Drive(b, tt.b); err != nil {
			t.Fatal(err)
		}
		if err := e.Evaluate(); err != nil {
			t.Fatal(err)
		}
		got := e.Sample(o)
		if !got.Known || got.Bits != tt.o {
			t.Errorf("%s(%04b, %04b) = %s, expected %04b", tt.op, tt.a, tt.b, got, tt.o)
		}
	}
}

func TestPowerOnUnknown(t *testing.T) {
	e, a, _, o := buildGate(t, netlist.OpAnd, 4)

	// nothing driven yet: output reads unknown
	if got := e.Sample(o); got.Known {
		t.Fatalf("power-on value must be unknown, got %s", got)
	}

	// one input driven is not enough for a known output
	if err := e.Drive(a, 0b1111); err != nil {
		t.Fatal(err)
	}
	if err := e.Evaluate(); err != nil {
		t.Fatal(err)
	}
	if got := e.Sample(o); got.Known {
		t.Fatalf("gate with unknown input must stay unknown, got %s", got)
	}
}

func TestDriveSinkPort(t *testing.T) {
	e, _, _, o := buildGate(t, netlist.OpAnd, 4)
	if err := e.Drive(o, 1); err == nil {
		t.Fatal("driving a sink port must fail")
	}
}

func TestResetClearsState(t *testing.T) {
	e, a, b, o := buildGate(t, netlist.OpOr, 4)
	if err := e.Drive(a, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.Drive(b, 2); err != nil {
		t.Fatal(err)
	}
	if err := e.Evaluate(); err != nil {
		t.Fatal(err)
	}
	if got := e.Sample(o); !got.Known || got.Bits != 3 {
		t.Fatalf("expected 0b11, got %s", got)
	}

	e.Reset()
	if got := e.Sample(o); got.Known {
		t.Fatalf("reset must return links to unknown, got %s", got)
	}
	if err := e.Evaluate(); err != nil {
		t.Fatal(err)
	}
	if got := e.Sample(o); got.Known {
		t.Fatalf("reset must also clear driven pins, got %s", got)
	}
}

// TestRegister clocks random values through a 4 bit register the way the
// harness would: drive, evaluate, check the previous load.
func TestRegister(t *testing.T) {
	d := netlist.NewInputPin("d", "D", 4)
	clk := netlist.NewInputPin("clk", "CLK", 1)
	r := netlist.NewRegister("r0", "", 4)
	q := netlist.NewOutputPin("q", "Q", 4)

	board := netlist.NewBoard("main")
	for _, c := range []*netlist.Component{d, clk, r, q} {
		if err := board.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	for _, pair := range [][2]*netlist.Port{
		{d.Port(netlist.PortPin), r.Port(netlist.PortD)},
		{clk.Port(netlist.PortPin), r.Port(netlist.PortClk)},
		{r.Port(netlist.PortQ), q.Port(netlist.PortPin)},
	} {
		if err := netlist.Connect(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}

	nl := netlist.New()
	nl.AddBoard(board)
	e := sim.New(nl)

	dp, cp, qp := d.Port(netlist.PortPin), clk.Port(netlist.PortPin), q.Port(netlist.PortPin)

	tick := func(v uint64) {
		t.Helper()
		if err := e.Drive(dp, v); err != nil {
			t.Fatal(err)
		}
		for _, c := range []uint64{0, 1} {
			if err := e.Drive(cp, c); err != nil {
				t.Fatal(err)
			}
			if err := e.Evaluate(); err != nil {
				t.Fatal(err)
			}
		}
	}

	// before the first edge the register content is unknown
	if got := e.Sample(qp); got.Known {
		t.Fatalf("register must power on unknown, got %s", got)
	}

	for _, v := range []uint64{0b0001, 0b1111, 0b1010, 0b0000} {
		tick(v)
		got := e.Sample(qp)
		if !got.Known || got.Bits != v {
			t.Fatalf("after loading %04b: q = %s", v, got)
		}
	}
}

func TestRegisterEnableAndReset(t *testing.T) {
	d := netlist.NewInputPin("d", "D", 4)
	en := netlist.NewInputPin("en", "EN", 1)
	rst := netlist.NewInputPin("rst", "RST", 1)
	clk := netlist.NewInputPin("clk", "CLK", 1)
	r := netlist.NewRegister("r0", "", 4)
	q := netlist.NewOutputPin("q", "Q", 4)

	board := netlist.NewBoard("main")
	for _, c := range []*netlist.Component{d, en, rst, clk, r, q} {
		if err := board.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	for _, pair := range [][2]*netlist.Port{
		{d.Port(netlist.PortPin), r.Port(netlist.PortD)},
		{en.Port(netlist.PortPin), r.Port(netlist.PortEn)},
		{rst.Port(netlist.PortPin), r.Port(netlist.PortRst)},
		{clk.Port(netlist.PortPin), r.Port(netlist.PortClk)},
		{r.Port(netlist.PortQ), q.Port(netlist.PortPin)},
	} {
		if err := netlist.Connect(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}

	nl := netlist.New()
	nl.AddBoard(board)
	e := sim.New(nl)

	drive := func(p *netlist.Port, v uint64) {
		t.Helper()
		if err := e.Drive(p, v); err != nil {
			t.Fatal(err)
		}
	}
	tick := func() {
		t.Helper()
		for _, c := range []uint64{0, 1} {
			drive(clk.Port(netlist.PortPin), c)
			if err := e.Evaluate(); err != nil {
				t.Fatal(err)
			}
		}
	}
	sample := func() sim.Value { return e.Sample(q.Port(netlist.PortPin)) }

	drive(d.Port(netlist.PortPin), 0b1010)
	drive(en.Port(netlist.PortPin), 1)
	drive(rst.Port(netlist.PortPin), 0)
	tick()
	if got := sample(); !got.Known || got.Bits != 0b1010 {
		t.Fatalf("load with en=1: q = %s", got)
	}

	// enable low holds the value
	drive(d.Port(netlist.PortPin), 0b0101)
	drive(en.Port(netlist.PortPin), 0)
	tick()
	if got := sample(); !got.Known || got.Bits != 0b1010 {
		t.Fatalf("hold with en=0: q = %s", got)
	}

	// reset wins over enable
	drive(rst.Port(netlist.PortPin), 1)
	tick()
	if got := sample(); !got.Known || got.Bits != 0 {
		t.Fatalf("reset: q = %s", got)
	}
}

func TestUnstableLoop(t *testing.T) {
	// a NOT gate feeding itself oscillates once its input becomes known,
	// so seed the loop with a driven pin on the same link
	g := netlist.NewGate("g0", netlist.OpNot, 1)
	seed := netlist.NewInputPin("seed", "", 1)

	board := netlist.NewBoard("main")
	if err := board.Add(g); err != nil {
		t.Fatal(err)
	}
	if err := board.Add(seed); err != nil {
		t.Fatal(err)
	}
	if err := netlist.Connect(g.Port(netlist.PortOut), g.Port(netlist.PortIn)); err != nil {
		t.Fatal(err)
	}
	if err := netlist.Connect(seed.Port(netlist.PortPin), g.Port(netlist.PortIn)); err != nil {
		t.Fatal(err)
	}

	nl := netlist.New()
	nl.AddBoard(board)
	e := sim.New(nl)

	if err := e.Drive(seed.Port(netlist.PortPin), 0); err != nil {
		t.Fatal(err)
	}
	err := e.Evaluate()
	if err == nil {
		t.Fatal("expected an unstable loop error")
	}
}

func TestValueString(t *testing.T) {
	for _, tt := range []struct {
		v sim.Value
		s string
	}{
		{sim.Unknown(), "x"},
		{sim.Known(0), "0b0"},
		{sim.Known(0b101), "0b101"},
	} {
		if got := tt.v.String(); got != tt.s {
			t.Errorf("%#v.String() = %q, expected %q", tt.v, got, tt.s)
		}
	}
}

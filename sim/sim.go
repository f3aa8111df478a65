// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sim implements the synchronous value propagation engine the
// probe toolkit drives between stimulus and assertion.
//
// The engine owns all simulated state for one netlist: the value of every
// link, the externally driven values of input pins, and the stored state
// of registers. Evaluation is a plain fixpoint sweep over the components,
// followed by a rising-edge register update and a second settling pass.
//
// Power-on convention: every value starts unknown (Value.Known == false)
// and stays unknown until something drives it. A gate with any unknown
// input produces an unknown output. Registers load on a known 0 -> 1
// transition of their clock; an unconnected enable counts as enabled, and
// the reset takes effect only on a known 1.
package sim

import (
	"github.com/pkg/errors"

	"github.com/probelab/netprobe/netlist"
)

// ErrUnstable is returned by Evaluate when a combinational loop keeps
// oscillating instead of settling.
var ErrUnstable = errors.New("circuit did not settle")

// maxPasses bounds the settling loop. Any real combinational path is far
// shorter than this; hitting the bound means an unstable loop.
const maxPasses = 1024

// A Value is a propagated logic value of up to 64 bits. The zero Value is
// unknown.
type Value struct {
	Bits  uint64
	Known bool
}

// Known returns a known value.
func Known(bits uint64) Value {
	return Value{Bits: bits, Known: true}
}

// Unknown returns the unknown value.
func Unknown() Value {
	return Value{}
}

func (v Value) String() string {
	if !v.Known {
		return "x"
	}
	return "0b" + formatBits(v.Bits)
}

func formatBits(b uint64) string {
	if b == 0 {
		return "0"
	}
	var buf [64]byte
	i := len(buf)
	for ; b != 0; b >>= 1 {
		i--
		buf[i] = '0' + byte(b&1)
	}
	return string(buf[i:])
}

// An Engine simulates one netlist. Create one engine per session; the
// engine is not safe for concurrent use.
type Engine struct {
	nl      *netlist.Netlist
	values  map[*netlist.Link]Value
	drives  map[*netlist.Port]Value
	state   map[*netlist.Component]Value
	lastClk map[*netlist.Component]Value
}

// New returns an engine for nl with all state at its power-on value.
func New(nl *netlist.Netlist) *Engine {
	e := &Engine{nl: nl}
	e.Reset()
	return e
}

// Reset clears all simulated state: link values, driven pins and register
// contents all return to unknown.
func (e *Engine) Reset() {
	e.values = make(map[*netlist.Link]Value)
	e.drives = make(map[*netlist.Port]Value)
	e.state = make(map[*netlist.Component]Value)
	e.lastClk = make(map[*netlist.Component]Value)
}

// Drive sets the value sourced by p on the next evaluation. p must be a
// source port; the value is truncated to p's width.
func (e *Engine) Drive(p *netlist.Port, v uint64) error {
	if p.Dir != netlist.Source {
		return errors.Errorf("cannot drive sink port %s.%s", p.Component().Name, p.Name)
	}
	e.drives[p] = Known(v & netlist.Mask(p.Bits))
	return nil
}

// Sample returns the current propagated value of p's link. An isolated
// port reads unknown.
func (e *Engine) Sample(p *netlist.Port) Value {
	l := p.Link()
	if l == nil {
		return Unknown()
	}
	return e.values[l]
}

// Evaluate propagates values until the combinational logic settles, then
// applies one register clock check and settles again if any register
// loaded. Call it after driving inputs and before sampling outputs.
func (e *Engine) Evaluate() error {
	if err := e.settle(); err != nil {
		return err
	}
	if e.tickRegisters() {
		return e.settle()
	}
	return nil
}

func (e *Engine) settle() error {
	for i := 0; i < maxPasses; i++ {
		if !e.sweep() {
			return nil
		}
	}
	return errors.WithStack(ErrUnstable)
}

// sweep updates every component's outputs once and reports whether any
// link changed.
func (e *Engine) sweep() bool {
	changed := false
	for _, b := range e.nl.Boards() {
		for _, c := range b.Components() {
			for _, out := range e.outputs(c) {
				if e.write(out.port, out.val) {
					changed = true
				}
			}
		}
	}
	return changed
}

type drive struct {
	port *netlist.Port
	val  Value
}

func (e *Engine) outputs(c *netlist.Component) []drive {
	switch c.Kind {
	case netlist.KindPin:
		p := c.Port(netlist.PortPin)
		if p.Dir != netlist.Source {
			return nil
		}
		return []drive{{p, e.drives[p]}}
	case netlist.KindConst:
		return []drive{{c.Port(netlist.PortOut), Known(c.Value)}}
	case netlist.KindRegister:
		return []drive{{c.Port(netlist.PortQ), e.state[c]}}
	case netlist.KindGate:
		return []drive{{c.Port(netlist.PortOut), e.evalGate(c)}}
	}
	return nil
}

func (e *Engine) write(p *netlist.Port, v Value) bool {
	l := p.Link()
	if l == nil {
		return false
	}
	if old := e.values[l]; old == v {
		return false
	}
	e.values[l] = v
	return true
}

func (e *Engine) evalGate(c *netlist.Component) Value {
	m := netlist.Mask(c.Port(netlist.PortOut).Bits)
	if c.Op.Unary() {
		in := e.Sample(c.Port(netlist.PortIn))
		if !in.Known {
			return Unknown()
		}
		switch c.Op {
		case netlist.OpNot:
			return Known(^in.Bits & m)
		case netlist.OpInc:
			return Known((in.Bits + 1) & m)
		}
		return Unknown()
	}
	a := e.Sample(c.Port(netlist.PortA))
	b := e.Sample(c.Port(netlist.PortB))
	if !a.Known || !b.Known {
		return Unknown()
	}
	switch c.Op {
	case netlist.OpAnd:
		return Known(a.Bits & b.Bits)
	case netlist.OpOr:
		return Known(a.Bits | b.Bits)
	case netlist.OpXor:
		return Known(a.Bits ^ b.Bits)
	case netlist.OpNand:
		return Known(^(a.Bits & b.Bits) & m)
	case netlist.OpNor:
		return Known(^(a.Bits | b.Bits) & m)
	case netlist.OpAdd:
		return Known((a.Bits + b.Bits) & m)
	}
	return Unknown()
}

// tickRegisters samples every register's clock, loads state on rising
// edges and reports whether any register changed.
func (e *Engine) tickRegisters() bool {
	changed := false
	for _, b := range e.nl.Boards() {
		for _, c := range b.Components() {
			if c.Kind != netlist.KindRegister {
				continue
			}
			clk := e.Sample(c.Port(netlist.PortClk))
			prev := e.lastClk[c]
			e.lastClk[c] = clk
			if !clk.Known || clk.Bits != 1 || !prev.Known || prev.Bits != 0 {
				continue
			}
			next, loaded := e.registerNext(c)
			if loaded && e.state[c] != next {
				e.state[c] = next
				changed = true
			}
		}
	}
	return changed
}

func (e *Engine) registerNext(c *netlist.Component) (Value, bool) {
	if rst := e.Sample(c.Port(netlist.PortRst)); rst.Known && rst.Bits == 1 {
		return Known(0), true
	}
	// unconnected enable counts as enabled
	if en := e.Sample(c.Port(netlist.PortEn)); en.Known && en.Bits == 0 {
		return Value{}, false
	}
	return e.Sample(c.Port(netlist.PortD)), true
}

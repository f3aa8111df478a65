// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

// Port names used by the component constructors.
const (
	PortPin = "pin" // the single port of an input or output pin
	PortIn  = "in"  // unary gate input
	PortA   = "a"   // binary gate inputs
	PortB   = "b"
	PortOut = "out" // gate and constant output

	PortQ   = "q"   // register data out
	PortD   = "d"   // register data in
	PortEn  = "en"  // register write enable
	PortClk = "clk" // register clock
	PortRst = "rst" // register synchronous reset
)

// Op is the operation computed by a gate component.
type Op int

// Gate operations. Unary ops read PortIn; binary ops read PortA and
// PortB. All ops drive PortOut and operate bitwise modulo the gate width.
const (
	OpNot Op = iota
	OpAnd
	OpOr
	OpXor
	OpNand
	OpNor
	OpAdd
	OpInc
)

var opNames = [...]string{
	OpNot:  "not",
	OpAnd:  "and",
	OpOr:   "or",
	OpXor:  "xor",
	OpNand: "nand",
	OpNor:  "nor",
	OpAdd:  "add",
	OpInc:  "inc",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op?"
}

// Unary reports whether o reads a single input port.
func (o Op) Unary() bool {
	return o == OpNot || o == OpInc
}

// ParseOp maps an operation name to its Op.
func ParseOp(name string) (Op, bool) {
	for op, n := range opNames {
		if n == name {
			return Op(op), true
		}
	}
	return 0, false
}

// NewInputPin returns a pin component the harness drives: its single
// port sources values onto whatever link it joins. An empty label leaves
// the pin unlabeled.
func NewInputPin(name, label string, bits int) *Component {
	c := &Component{Kind: KindPin, Name: name, Label: label}
	c.addPort(PortPin, Source, bits)
	return c
}

// NewOutputPin returns a pin component the harness observes: its single
// port sinks the value of whatever link it joins.
func NewOutputPin(name, label string, bits int) *Component {
	c := &Component{Kind: KindPin, Name: name, Label: label}
	c.addPort(PortPin, Sink, bits)
	return c
}

// NewRegister returns a clocked register. The data ports q and d are
// bits wide; en, clk and rst are single-bit sinks.
func NewRegister(name, label string, bits int) *Component {
	c := &Component{Kind: KindRegister, Name: name, Label: label}
	c.addPort(PortQ, Source, bits)
	c.addPort(PortD, Sink, bits)
	c.addPort(PortEn, Sink, 1)
	c.addPort(PortClk, Sink, 1)
	c.addPort(PortRst, Sink, 1)
	return c
}

// NewGate returns a combinational gate computing op over bits-wide
// inputs.
func NewGate(name string, op Op, bits int) *Component {
	c := &Component{Kind: KindGate, Name: name, Op: op}
	if op.Unary() {
		c.addPort(PortIn, Sink, bits)
	} else {
		c.addPort(PortA, Sink, bits)
		c.addPort(PortB, Sink, bits)
	}
	c.addPort(PortOut, Source, bits)
	return c
}

// NewConst returns a component driving the constant value onto its out
// port. The value is truncated to bits.
func NewConst(name string, bits int, value uint64) *Component {
	c := &Component{Kind: KindConst, Name: name, Value: value & Mask(bits)}
	c.addPort(PortOut, Source, bits)
	return c
}

// Mask returns the bit mask covering a width of bits (1..64).
func Mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

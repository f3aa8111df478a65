// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netfile parses the textual netlist format into a netlist graph.
//
// The format is line oriented: a file holds board blocks, each declaring
// components (pins, registers, gates, constants) and the nets wiring
// their ports together.
//
//	# a 2 bit counter
//	board "Counter" {
//	    pin in  clk  "CLK"   : 1
//	    pin out view "Count" : 2
//	    reg  r0 "State" : 2
//	    gate g0 inc : 2
//	    net r0.q g0.in view.pin
//	    net g0.out r0.d
//	    net clk.pin r0.clk
//	}
//
// The parser enforces structural validity: all ports on one net share a
// bit width, every port reference resolves, and instance names are unique
// within their board. A graph returned by this package is valid input for
// a probe session.
package netfile

import (
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/probelab/netprobe/netlist"
)

var parser = participle.MustBuild[File](
	participle.Lexer(netLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse reads a netlist from r.
func Parse(r io.Reader) (*netlist.Netlist, error) {
	f, err := parser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(err, "parse netlist")
	}
	return build(f)
}

// ParseString parses a netlist from src.
func ParseString(src string) (*netlist.Netlist, error) {
	f, err := parser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(err, "parse netlist")
	}
	return build(f)
}

// ParseFile parses the netlist file at path.
func ParseFile(path string) (*netlist.Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open netlist file %q", path)
	}
	defer f.Close()
	return Parse(f)
}

func build(f *File) (*netlist.Netlist, error) {
	nl := netlist.New()
	for _, bd := range f.Boards {
		b, err := buildBoard(bd)
		if err != nil {
			return nil, err
		}
		nl.AddBoard(b)
	}
	return nl, nil
}

func buildBoard(bd *BoardDecl) (*netlist.Board, error) {
	b := netlist.NewBoard(bd.Name)
	comps := make(map[string]*netlist.Component)

	add := func(name string, c *netlist.Component) error {
		if _, ok := comps[name]; ok {
			return errors.Errorf("board %q: duplicate component name %q", bd.Name, name)
		}
		comps[name] = c
		return b.Add(c)
	}

	for _, st := range bd.Stmts {
		var err error
		switch {
		case st.Pin != nil:
			d := st.Pin
			if d.Dir == "in" {
				err = add(d.Name, netlist.NewInputPin(d.Name, label(d.Label), d.Bits))
			} else {
				err = add(d.Name, netlist.NewOutputPin(d.Name, label(d.Label), d.Bits))
			}
		case st.Reg != nil:
			d := st.Reg
			err = add(d.Name, netlist.NewRegister(d.Name, label(d.Label), d.Bits))
		case st.Gate != nil:
			d := st.Gate
			op, ok := netlist.ParseOp(d.Op)
			if !ok {
				return nil, errors.Errorf("board %q: gate %q: unknown operation %q", bd.Name, d.Name, d.Op)
			}
			err = add(d.Name, netlist.NewGate(d.Name, op, d.Bits))
		case st.Const != nil:
			d := st.Const
			if d.Value > netlist.Mask(d.Bits) {
				return nil, errors.Errorf("board %q: const %q: value %d does not fit %d bits",
					bd.Name, d.Name, d.Value, d.Bits)
			}
			err = add(d.Name, netlist.NewConst(d.Name, d.Bits, d.Value))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "board %q", bd.Name)
		}
	}

	// wire nets after all components exist: nets may reference forward
	for _, st := range bd.Stmts {
		if st.Net == nil {
			continue
		}
		first, err := resolveRef(bd.Name, comps, st.Net.Refs[0])
		if err != nil {
			return nil, err
		}
		for _, ref := range st.Net.Refs[1:] {
			p, err := resolveRef(bd.Name, comps, ref)
			if err != nil {
				return nil, err
			}
			if err := netlist.Connect(first, p); err != nil {
				return nil, errors.Wrapf(err, "board %q", bd.Name)
			}
		}
	}
	return b, nil
}

func resolveRef(board string, comps map[string]*netlist.Component, ref *PortRef) (*netlist.Port, error) {
	c, ok := comps[ref.Comp]
	if !ok {
		return nil, errors.Errorf("board %q: net references unknown component %q", board, ref.Comp)
	}
	p := c.Port(ref.Port)
	if p == nil {
		return nil, errors.Errorf("board %q: component %q has no port %q", board, ref.Comp, ref.Port)
	}
	return p, nil
}

func label(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netfile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// netLexer tokenizes the netlist text format. Comments run from '#' to
// end of line.
var netLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{}:.=]`},
})

// File is the parse tree of one netlist file.
type File struct {
	Boards []*BoardDecl `parser:"@@*"`
}

// BoardDecl declares one board and its components and nets.
type BoardDecl struct {
	Name  string  `parser:"'board' @String '{'"`
	Stmts []*Stmt `parser:"@@* '}'"`
}

// Stmt is one declaration inside a board block.
type Stmt struct {
	Pin   *PinDecl   `parser:"  @@"`
	Reg   *RegDecl   `parser:"| @@"`
	Gate  *GateDecl  `parser:"| @@"`
	Const *ConstDecl `parser:"| @@"`
	Net   *NetDecl   `parser:"| @@"`
}

// PinDecl declares an input or output pin:
//
//	pin in clk "CLK" : 1
type PinDecl struct {
	Dir   string  `parser:"'pin' @('in' | 'out')"`
	Name  string  `parser:"@Ident"`
	Label *string `parser:"@String?"`
	Bits  int     `parser:"':' @Int"`
}

// RegDecl declares a register:
//
//	reg r0 "State" : 2
type RegDecl struct {
	Name  string  `parser:"'reg' @Ident"`
	Label *string `parser:"@String?"`
	Bits  int     `parser:"':' @Int"`
}

// GateDecl declares a combinational gate:
//
//	gate g0 inc : 2
type GateDecl struct {
	Name string `parser:"'gate' @Ident"`
	Op   string `parser:"@Ident"`
	Bits int    `parser:"':' @Int"`
}

// ConstDecl declares a constant driver:
//
//	const one : 2 = 1
type ConstDecl struct {
	Name  string `parser:"'const' @Ident"`
	Bits  int    `parser:"':' @Int"`
	Value uint64 `parser:"'=' @Int"`
}

// NetDecl wires two or more ports together:
//
//	net r0.q g0.in view.pin
type NetDecl struct {
	Refs []*PortRef `parser:"'net' @@ @@+"`
}

// PortRef names a port as component.port.
type PortRef struct {
	Comp string `parser:"@Ident"`
	Port string `parser:"'.' @Ident"`
}

// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist provides the minimal netlist graph that the probe
// toolkit operates on: boards, components, directional ports and
// equipotential links.
//
// All operations in this package are local graph edits with no simulation
// side effects. Evaluating signal values over the graph is the sim
// package's job.
package netlist

import (
	"github.com/pkg/errors"
)

// ErrWidthMismatch is returned when two ports of different bit widths
// would end up on the same link. Every port of a link shares one width;
// the graph never coerces.
var ErrWidthMismatch = errors.New("bit width mismatch")

// Kind classifies a component.
type Kind int

// Component kinds.
const (
	KindOther Kind = iota
	KindPin
	KindRegister
	KindGate
	KindConst
)

func (k Kind) String() string {
	switch k {
	case KindPin:
		return "pin"
	case KindRegister:
		return "register"
	case KindGate:
		return "gate"
	case KindConst:
		return "const"
	}
	return "other"
}

// Dir is the direction of a port relative to its component.
type Dir int

const (
	// Source ports are driven by their component onto the link.
	Source Dir = iota
	// Sink ports are read by their component from the link.
	Sink
)

func (d Dir) String() string {
	if d == Source {
		return "source"
	}
	return "sink"
}

// A Netlist is an ordered collection of boards, as materialized by a
// loader. It is the scope of a probe session.
type Netlist struct {
	boards []*Board
}

// New returns an empty netlist.
func New() *Netlist {
	return &Netlist{}
}

// AddBoard appends a board to the netlist.
func (n *Netlist) AddBoard(b *Board) {
	n.boards = append(n.boards, b)
}

// Boards returns the netlist's boards in insertion order.
func (n *Netlist) Boards() []*Board {
	return n.boards
}

// A Board is an ordered collection of components plus the links among
// their ports. It is the unit of scoping for name lookup and for register
// substitution.
type Board struct {
	Name  string
	comps []*Component
}

// NewBoard returns an empty board.
func NewBoard(name string) *Board {
	return &Board{Name: name}
}

// Add inserts a component into the board. A component belongs to exactly
// one board.
func (b *Board) Add(c *Component) error {
	if c.board != nil {
		return errors.Errorf("component %q already belongs to board %q", c.Name, c.board.Name)
	}
	c.board = b
	b.comps = append(b.comps, c)
	return nil
}

// Remove detaches all of c's ports and removes c from the board. The
// remaining graph is left without dangling ports or stale link members.
func (b *Board) Remove(c *Component) error {
	for i, cc := range b.comps {
		if cc != c {
			continue
		}
		for _, p := range c.ports {
			Detach(p)
		}
		b.comps = append(b.comps[:i], b.comps[i+1:]...)
		c.board = nil
		return nil
	}
	return errors.Errorf("component %q is not on board %q", c.Name, b.Name)
}

// Components returns the board's components in insertion order. The
// returned slice is the board's own; callers must not mutate it.
func (b *Board) Components() []*Component {
	return b.comps
}

// A Component is a placed netlist element owning a fixed set of ports.
//
// Name identifies the instance within its board (used by the netfile
// format and in diagnostics). Label is the free-text, user-facing label
// that name resolution matches on; a component with an empty Label is
// unlabeled and never matches a lookup.
type Component struct {
	Kind  Kind
	Name  string
	Label string
	Op    Op     // gate operation, KindGate only
	Value uint64 // constant value, KindConst only

	board *Board
	ports []*Port
}

// Board returns the board owning c, or nil.
func (c *Component) Board() *Board {
	return c.board
}

// Ports returns c's ports in declaration order.
func (c *Component) Ports() []*Port {
	return c.ports
}

// Port returns the port with the given name, or nil.
func (c *Component) Port(name string) *Port {
	for _, p := range c.ports {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (c *Component) addPort(name string, dir Dir, bits int) *Port {
	p := &Port{Name: name, Dir: dir, Bits: bits, comp: c}
	c.ports = append(c.ports, p)
	return p
}

// A Port is a directional connection point on a component. A port
// participates in at most one link at a time.
type Port struct {
	Name string
	Dir  Dir
	Bits int

	comp *Component
	link *Link
}

// Component returns the component owning p.
func (p *Port) Component() *Component {
	return p.comp
}

// Link returns the link p participates in, or nil if p is isolated.
func (p *Port) Link() *Link {
	return p.link
}

// Peers returns the remote ports currently linked with p, excluding p
// itself. The result is a fresh slice safe to hold across graph edits.
func (p *Port) Peers() []*Port {
	if p.link == nil {
		return nil
	}
	peers := make([]*Port, 0, len(p.link.ports)-1)
	for _, q := range p.link.ports {
		if q != p {
			peers = append(peers, q)
		}
	}
	return peers
}

// A Link is an equipotential set of ports wired together. All member
// ports share one bit width. A link with fewer than two members is
// degenerate and is dissolved by the editing functions below.
type Link struct {
	Bits  int
	ports []*Port
}

// Ports returns the link's member ports. The returned slice is the
// link's own; callers must not mutate it.
func (l *Link) Ports() []*Port {
	return l.ports
}

func (l *Link) remove(p *Port) {
	for i, q := range l.ports {
		if q == p {
			l.ports = append(l.ports[:i], l.ports[i+1:]...)
			return
		}
	}
}

// Connect wires p and q together. If either port already participates in
// a link, the other joins it; if both do, the two links are merged. The
// widths of all ports ending up on one link must agree.
func Connect(p, q *Port) error {
	if p == q {
		return nil
	}
	if p.Bits != q.Bits {
		return errors.Wrapf(ErrWidthMismatch,
			"cannot connect %s.%s (%d bits) to %s.%s (%d bits)",
			p.comp.Name, p.Name, p.Bits, q.comp.Name, q.Name, q.Bits)
	}
	switch {
	case p.link == nil && q.link == nil:
		l := &Link{Bits: p.Bits, ports: []*Port{p, q}}
		p.link, q.link = l, l
	case p.link == nil:
		q.link.ports = append(q.link.ports, p)
		p.link = q.link
	case q.link == nil:
		p.link.ports = append(p.link.ports, q)
		q.link = p.link
	case p.link != q.link:
		// merge q's link into p's
		src := q.link
		for _, r := range src.ports {
			r.link = p.link
		}
		p.link.ports = append(p.link.ports, src.ports...)
		src.ports = nil
	}
	return nil
}

// Disconnect removes peer from the link it shares with p. If p and peer
// are not linked together, Disconnect is a no-op. A link left with a
// single member is dissolved, leaving that member isolated.
func Disconnect(p, peer *Port) {
	l := p.link
	if l == nil || peer.link != l || p == peer {
		return
	}
	l.remove(peer)
	peer.link = nil
	if len(l.ports) == 1 {
		l.ports[0].link = nil
		l.ports = nil
	}
}

// Detach removes p from its link, dissolving the link if it degenerates.
func Detach(p *Port) {
	l := p.link
	if l == nil {
		return
	}
	l.remove(p)
	p.link = nil
	if len(l.ports) == 1 {
		l.ports[0].link = nil
		l.ports = nil
	}
}

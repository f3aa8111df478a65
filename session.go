// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netprobe

import (
	"github.com/pkg/errors"

	"github.com/probelab/netprobe/netfile"
	"github.com/probelab/netprobe/netlist"
	"github.com/probelab/netprobe/sim"
)

// A Session owns one netlist and the engine simulating it for the
// lifetime of a test run. Each test constructs its own session; there is
// no shared process-wide state. Sessions are not safe for concurrent use
// and substitution must complete before any probe is read or written.
type Session struct {
	nl  *netlist.Netlist
	eng *sim.Engine
}

// NewSession wraps an already materialized netlist. The netlist must be
// structurally valid (every link's members share one bit width), which
// the netlist and netfile packages guarantee by construction.
func NewSession(nl *netlist.Netlist) *Session {
	return &Session{nl: nl, eng: sim.New(nl)}
}

// Load materializes a session from a netlist file.
func Load(path string) (*Session, error) {
	nl, err := netfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewSession(nl), nil
}

// Engine returns the session's simulation engine. Most tests only need
// Evaluate and Reset; reaching further into the engine couples the test
// to simulation internals.
func (s *Session) Engine() *sim.Engine {
	return s.eng
}

// Evaluate propagates driven values through the netlist. Call it between
// Writer.Set and Reader.Get.
func (s *Session) Evaluate() error {
	return s.eng.Evaluate()
}

// Reset clears all simulated state.
func (s *Session) Reset() {
	s.eng.Reset()
}

// Board resolves a board by canonicalized name. Exactly one board must
// match: zero matches yield ErrNotFound, several yield ErrAmbiguous.
func (s *Session) Board(name string) (*Board, error) {
	canon := Canonicalize(name)
	var matches []*netlist.Board
	for _, b := range s.nl.Boards() {
		if Canonicalize(b.Name) == canon {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.Wrapf(ErrNotFound, "no board named %q", name)
	case 1:
		return &Board{b: matches[0], s: s}, nil
	default:
		return nil, errors.Wrapf(ErrAmbiguous, "%d boards named %q, expected 1", len(matches), name)
	}
}

// A Board scopes pin resolution and register substitution to one
// netlist board within its session.
type Board struct {
	b *netlist.Board
	s *Session
}

// Name returns the board's name as written in the netlist.
func (b *Board) Name() string {
	return b.b.Name
}

// Session returns the session owning b.
func (b *Board) Session() *Session {
	return b.s
}

// Netlist returns the underlying netlist board for direct graph
// inspection.
func (b *Board) Netlist() *netlist.Board {
	return b.b
}

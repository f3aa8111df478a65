// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netprobe

import (
	"github.com/pkg/errors"

	"github.com/probelab/netprobe/netlist"
	"github.com/probelab/netprobe/sim"
)

// lookupPin resolves the unique pin component labelled label on the
// board. Uniqueness is checked before direction, and direction before
// width, so the error names the most specific defect.
func (b *Board) lookupPin(label string, wantInput bool, wantBits int) (*netlist.Port, error) {
	canon := Canonicalize(label)
	var matches []*netlist.Component
	for _, c := range b.b.Components() {
		// unlabeled components never match, they are not wildcards
		if c.Kind != netlist.KindPin || c.Label == "" {
			continue
		}
		if Canonicalize(c.Label) == canon {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, errors.Wrapf(ErrNotFound,
			"board %q contains no pins labelled %q", b.b.Name, label)
	}
	if len(matches) > 1 {
		return nil, errors.Wrapf(ErrAmbiguous,
			"board %q contains %d pins labelled %q, expected 1", b.b.Name, len(matches), label)
	}

	c := matches[0]
	p := c.Port(netlist.PortPin)
	// report their label, not the caller's spelling
	if isInput := p.Dir == netlist.Source; isInput != wantInput {
		return nil, errors.Wrapf(ErrDirection,
			"board %q has %s pin labelled %q, expected an %s pin",
			b.b.Name, pinDir(isInput), c.Label, pinDir(wantInput))
	}
	if p.Bits != wantBits {
		return nil, errors.Wrapf(ErrWidth,
			"board %q has pin labelled %q with %d bits, expected %d bits",
			b.b.Name, c.Label, p.Bits, wantBits)
	}
	return p, nil
}

func pinDir(input bool) string {
	if input {
		return "input"
	}
	return "output"
}

// InputPin resolves the unique input pin labelled label and returns a
// Writer for it.
func (b *Board) InputPin(label string, bits int) (*Writer, error) {
	p, err := b.lookupPin(label, true, bits)
	if err != nil {
		return nil, err
	}
	return &Writer{port: p, s: b.s}, nil
}

// OutputPin resolves the unique output pin labelled label and returns a
// Reader for it.
func (b *Board) OutputPin(label string, bits int) (*Reader, error) {
	p, err := b.lookupPin(label, false, bits)
	if err != nil {
		return nil, err
	}
	return &Reader{port: p, s: b.s}, nil
}

// A Writer drives values onto one input-direction port. It holds a
// non-owning reference to the port and its session and carries no state
// of its own; direction is fixed and validated at construction.
type Writer struct {
	port *netlist.Port
	s    *Session
}

// Bits returns the port's declared width.
func (w *Writer) Bits() int {
	return w.port.Bits
}

// Port returns the underlying netlist port.
func (w *Writer) Port() *netlist.Port {
	return w.port
}

// Set drives v onto the port, to be observed by the engine's next
// evaluation. Values outside [0, 2^bits-1] fail with ErrOutOfRange.
func (w *Writer) Set(v uint64) error {
	if v > netlist.Mask(w.port.Bits) {
		return errors.Wrapf(ErrOutOfRange,
			"value %d does not fit pin %q (%d bits)", v, w.port.Component().Label, w.port.Bits)
	}
	return w.s.eng.Drive(w.port, v)
}

// A Reader observes the propagated value of one output-direction port.
type Reader struct {
	port *netlist.Port
	s    *Session
}

// Bits returns the port's declared width.
func (r *Reader) Bits() int {
	return r.port.Bits
}

// Port returns the underlying netlist port.
func (r *Reader) Port() *netlist.Port {
	return r.port
}

// Get returns the port's current propagated value, exactly as the engine
// reports it. Before any propagation this is the engine's power-on
// convention (unknown); Get never substitutes a default.
func (r *Reader) Get() sim.Value {
	return r.s.eng.Sample(r.port)
}

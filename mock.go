// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netprobe

import (
	"github.com/pkg/errors"

	"github.com/probelab/netprobe/netlist"
)

// A MockRegister bundles the five probe pins substituted for a removed
// register. The harness stands in for the register itself: Q drives the
// value the register would currently hold, while D, En, Clk and Rst
// observe what the surrounding circuit feeds the (now absent) register.
// Reading D after an evaluation yields the register's would-be next
// state.
type MockRegister struct {
	Q   *Writer
	D   *Reader
	En  *Reader
	Clk *Reader
	Rst *Reader
}

// MockOnlyRegister excises the single register of the board and splices a
// probe pin into every wire that terminated at one of its ports, so the
// surrounding logic keeps seeing the exact same connectivity.
//
// The board must contain exactly one register (ErrNotFound/ErrAmbiguous
// otherwise) of the wanted width (ErrWidth otherwise); all three checks
// run before any graph mutation. A failure during the mutation phase
// wraps ErrGraphMutation and leaves the session unusable: the graph may
// be partially rewritten and no rollback is attempted.
//
// The register is gone from the board afterwards, so calling
// MockOnlyRegister twice fails with ErrNotFound.
func (b *Board) MockOnlyRegister(wantBits int) (*MockRegister, error) {
	var regs []*netlist.Component
	for _, c := range b.b.Components() {
		if c.Kind == netlist.KindRegister {
			regs = append(regs, c)
		}
	}
	if len(regs) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "board %q contains no registers", b.b.Name)
	}
	if len(regs) > 1 {
		return nil, errors.Wrapf(ErrAmbiguous,
			"board %q contains %d registers, expected 1", b.b.Name, len(regs))
	}
	reg := regs[0]
	if bits := reg.Port(netlist.PortQ).Bits; bits != wantBits {
		return nil, errors.Wrapf(ErrWidth,
			"board %q has a register with %d bits, expected %d bits", b.b.Name, bits, wantBits)
	}

	// validation done; edits from here on are not rolled back
	q, err := b.substitutePort(reg.Port(netlist.PortQ), true)
	if err != nil {
		return nil, err
	}
	d, err := b.substitutePort(reg.Port(netlist.PortD), false)
	if err != nil {
		return nil, err
	}
	en, err := b.substitutePort(reg.Port(netlist.PortEn), false)
	if err != nil {
		return nil, err
	}
	clk, err := b.substitutePort(reg.Port(netlist.PortClk), false)
	if err != nil {
		return nil, err
	}
	rst, err := b.substitutePort(reg.Port(netlist.PortRst), false)
	if err != nil {
		return nil, err
	}
	if err := b.b.Remove(reg); err != nil {
		return nil, errors.Wrapf(ErrGraphMutation, "removing register %q: %v", reg.Name, err)
	}

	return &MockRegister{
		Q:   &Writer{port: q, s: b.s},
		D:   &Reader{port: d, s: b.s},
		En:  &Reader{port: en, s: b.s},
		Clk: &Reader{port: clk, s: b.s},
		Rst: &Reader{port: rst, s: b.s},
	}, nil
}

// substitutePort detaches p from the graph and splices in a probe pin
// wired to exactly the peers p had. The peers are captured before the
// first disconnect: detaching removes the very link that identifies them.
//
// The probe takes the role opposite to the removed component's: a port
// the register drove becomes a pin the harness drives (input), a port the
// register read becomes a pin the harness observes (output).
func (b *Board) substitutePort(p *netlist.Port, input bool) (*netlist.Port, error) {
	peers := p.Peers()
	for _, peer := range peers {
		netlist.Disconnect(p, peer)
	}

	name := p.Component().Name + "_" + p.Name + "_probe"
	var probe *netlist.Component
	if input {
		probe = netlist.NewInputPin(name, "", p.Bits)
	} else {
		probe = netlist.NewOutputPin(name, "", p.Bits)
	}
	if err := b.b.Add(probe); err != nil {
		return nil, errors.Wrapf(ErrGraphMutation, "inserting probe %q: %v", name, err)
	}

	np := probe.Port(netlist.PortPin)
	// should the board ever auto-join ports on insertion, start isolated
	for _, peer := range np.Peers() {
		netlist.Disconnect(np, peer)
	}
	for _, peer := range peers {
		if err := netlist.Connect(np, peer); err != nil {
			return nil, errors.Wrapf(ErrGraphMutation,
				"rewiring %s.%s to probe %q: %v", peer.Component().Name, peer.Name, name, err)
		}
	}
	return np, nil
}

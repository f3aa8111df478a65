// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package netprobe lets a test harness interrogate and selectively rewrite a
loaded digital-logic netlist so that isolated pieces of combinational or
sequential logic can be driven and observed without simulating the whole
surrounding design.

A Session owns one netlist and one simulation engine. Boards and pins are
resolved by canonicalized label ("ALU", "alu" and "A L U" are the same
name) and resolution either finds exactly one match or fails; the library
never guesses. Resolved pins come back as Writers (harness drives values)
or Readers (harness observes propagated values).

MockOnlyRegister excises the single register of a board and splices probe
pins into every wire that terminated at its ports, so the combinational
logic around the register can be tested in isolation:

	sess, err := netprobe.Load("counter.net")
	// ...
	board, err := sess.Board("counter")
	// ...
	mock, err := board.MockOnlyRegister(2)
	// ...
	mock.Q.Set(0b01)
	sess.Evaluate()
	next := mock.D.Get() // the register's would-be next state
*/
package netprobe

// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netprobe

import (
	"github.com/pkg/errors"
)

// Error kinds surfaced by resolution and substitution. Every error is
// wrapped with the board and label involved plus the expected and actual
// values; use errors.Cause to match the kind.
var (
	// ErrNotFound: zero elements match a canonicalized name filter.
	ErrNotFound = errors.New("no matching element")
	// ErrAmbiguous: more than one element matches; picking one
	// arbitrarily would make tests nondeterministic.
	ErrAmbiguous = errors.New("more than one matching element")
	// ErrDirection: a matched pin is an input where an output was
	// expected, or vice versa.
	ErrDirection = errors.New("pin direction mismatch")
	// ErrWidth: a matched element's bit width disagrees with the
	// caller's expectation.
	ErrWidth = errors.New("bit width mismatch")
	// ErrOutOfRange: a value written through a Writer does not fit the
	// port's bit width.
	ErrOutOfRange = errors.New("value out of range")
	// ErrGraphMutation: the netlist rejected an edit mid-substitution.
	// The graph may be partially rewritten; the session is unusable.
	ErrGraphMutation = errors.New("netlist edit rejected")
)

// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netprobe

import (
	"strings"
)

// Canonicalize reduces a raw label to its canonical form: lowercase with
// every character outside [0-9a-z] dropped. Two raw labels are the same
// name iff their canonical forms are equal. The empty canonical form is
// legal and matches other empty-canonical labels.
func Canonicalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

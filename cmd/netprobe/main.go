// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/probelab/netprobe/cmd/netprobe/cmd"
)

func main() {
	cmd.Execute()
}

// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probelab/netprobe"
)

var canonCmd = &cobra.Command{
	Use:   "canon <label>...",
	Short: "Show the canonical form of one or more labels",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range args {
			fmt.Printf("%q -> %q\n", a, netprobe.Canonicalize(a))
		}
	},
}

func init() {
	rootCmd.AddCommand(canonCmd)
}

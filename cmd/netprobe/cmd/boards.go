// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probelab/netprobe"
	"github.com/probelab/netprobe/netfile"
)

var boardsCmd = &cobra.Command{
	Use:   "boards <file>",
	Short: "List the boards in a netlist file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nl, err := netfile.ParseFile(args[0])
		if err != nil {
			return err
		}
		for _, b := range nl.Boards() {
			if verbose {
				fmt.Printf("%-24s canonical %-24q %d components\n",
					b.Name, netprobe.Canonicalize(b.Name), len(b.Components()))
			} else {
				fmt.Println(b.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}

// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probelab/netprobe"
	"github.com/probelab/netprobe/netlist"
)

var infoCmd = &cobra.Command{
	Use:   "info <file> <board>",
	Short: "List the components and nets of a board",
	Long: `info resolves the board name the same way a test session would
(lowercase alphanumeric comparison) and prints its components with their
ports and links.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := netprobe.Load(args[0])
		if err != nil {
			return err
		}
		board, err := sess.Board(args[1])
		if err != nil {
			return err
		}

		fmt.Printf("board %q\n", board.Name())
		links := make(map[*netlist.Link]int)
		for _, c := range board.Netlist().Components() {
			label := ""
			if c.Label != "" {
				label = fmt.Sprintf(" %q", c.Label)
			}
			fmt.Printf("  %-8s %s%s\n", c.Kind, c.Name, label)
			if !verbose {
				continue
			}
			for _, p := range c.Ports() {
				net := "unconnected"
				if l := p.Link(); l != nil {
					if _, ok := links[l]; !ok {
						links[l] = len(links)
					}
					net = fmt.Sprintf("net%d", links[l])
				}
				fmt.Printf("           .%-4s %-6s %2d bits  %s\n", p.Name, p.Dir, p.Bits, net)
			}
		}
		if verbose {
			fmt.Printf("%d nets\n", len(links))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

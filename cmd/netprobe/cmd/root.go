// Copyright 2025 The netprobe Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cmd implements the netprobe command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "netprobe",
	Short: "netprobe - inspect and probe netlist files",
	Long: `netprobe inspects textual netlist files and resolves the names a test
harness would use against them.

Examples:
  netprobe boards counter.net           # list the boards in a file
  netprobe info counter.net counter     # list components and nets of a board
  netprobe canon "1-Bit ALU"            # show a label's canonical form`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

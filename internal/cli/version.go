// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the glistix version, set at build time via ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the glistix version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glistix %s\n", Version)
	},
}

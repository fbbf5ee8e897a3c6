package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ternarybob/vantage/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		common.PrintBanner()
		fmt.Fprintf(cmd.OutOrStdout(), "Vantage version %s\n", common.GetFullVersion())
	},
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/tsnotebook"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tsnb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tsnb version %s\n", strings.TrimSpace(tsnotebook.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

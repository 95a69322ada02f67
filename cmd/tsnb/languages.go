package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages accepted for code cells",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		langs := ws.Languages
		fmt.Fprintf(out, "%s (query, default for code cells)\n", langs.Query)
		for _, id := range langs.Source {
			fmt.Fprintln(out, id)
		}
		fmt.Fprintf(out, "%s (markup cells)\n", langs.Markdown)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

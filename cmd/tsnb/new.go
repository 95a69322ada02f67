package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/tsnotebook/pkg/core"
	"github.com/aretw0/tsnotebook/pkg/store"
)

var newForce bool

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create a notebook with the starter cells",
	Long: `Create a notebook holding a sample JavaScript cell and a query that matches it.
The .tsqnb extension is added when the name has none.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if filepath.Ext(path) == "" {
			path += store.Extension
		}

		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		doc, err := ws.Store.Create(context.Background(), path, newForce)
		if err != nil {
			if errors.Is(err, core.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d cells\n", path, doc.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Overwrite an existing file")
}

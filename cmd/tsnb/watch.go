package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/tsnotebook/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch [glob]",
	Short: "Re-check notebooks whenever they change",
	Long:  `Watch the notebook directory and print a check line for every notebook that is created or modified. Stops on interrupt.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := ws.Store.Watch(ctx, pattern)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s\n", ws.Root)
		for e := range events {
			if e.Type == core.EventDelete {
				fmt.Fprintf(out, "removed %s\n", e.Path)
				continue
			}
			res, err := ws.Store.Open(context.Background(), e.Path)
			res.Err = err
			printResult(out, res)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

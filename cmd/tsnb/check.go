package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tsnotebook/pkg/codec"
)

var checkJSON bool

type checkOutput struct {
	Path         string       `json:"path"`
	Error        string       `json:"error,omitempty"`
	Report       codec.Report `json:"report"`
	Unregistered []int        `json:"unregistered,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check [file|glob...]",
	Short: "Validate notebooks and report dropped cells",
	Long: `Decode each notebook the way an editor would and report what it would lose.
Without arguments every notebook matching the configured pattern (default **/*.tsqnb)
is checked. Exits with status 1 when any file is not a valid notebook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		results, err := ws.Store.Check(context.Background(), args...)
		if err != nil {
			return err
		}

		failed := 0
		out := cmd.OutOrStdout()
		if checkJSON {
			payload := make([]checkOutput, 0, len(results))
			for _, res := range results {
				entry := checkOutput{Path: res.Path, Report: res.Report, Unregistered: res.Unregistered}
				if res.Err != nil {
					entry.Error = res.Err.Error()
					failed++
				}
				payload = append(payload, entry)
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(payload); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
		} else {
			if len(results) == 0 {
				fmt.Fprintln(out, "No notebooks found")
			}
			for _, res := range results {
				if !res.OK() {
					failed++
				}
				printResult(out, res)
			}
		}

		ws.Logger.Debug("check finished", "files", len(results), "failed", failed, "drops", ws.Drops.Snapshot().Total)
		if failed > 0 {
			return errSilent
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output results as JSON")
}

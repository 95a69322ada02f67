package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
)

var (
	showJSON   bool
	showYAML   bool
	showReport bool
)

type showOutput struct {
	Path   string        `json:"path" yaml:"path"`
	Cells  []core.Cell   `json:"cells" yaml:"cells"`
	Report *codec.Report `json:"report,omitempty" yaml:"report,omitempty"`
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the cells of a notebook",
	Long:  `Print the cells of a notebook as decoded. Outputs a plain listing by default, or a document with --json / --yaml.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showJSON && showYAML {
			return fmt.Errorf("--json and --yaml are mutually exclusive")
		}

		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		res, err := ws.Store.Open(context.Background(), args[0])
		if err != nil {
			return err
		}

		payload := showOutput{Path: res.Path, Cells: res.Document.Cells}
		if showReport {
			payload.Report = &res.Report
		}

		out := cmd.OutOrStdout()
		switch {
		case showJSON:
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(payload); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
		case showYAML:
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if err := encoder.Encode(payload); err != nil {
				return fmt.Errorf("failed to encode YAML: %w", err)
			}
			return encoder.Close()
		default:
			for i, cell := range res.Document.Cells {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, describeCell(i, cell))
				fmt.Fprintln(out, cell.Source)
			}
			if showReport {
				fmt.Fprintln(out)
				printResult(out, res)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Output in YAML format")
	showCmd.Flags().BoolVar(&showReport, "report", false, "Include the decode report")
}

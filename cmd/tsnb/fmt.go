package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/tsnotebook"
	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/store"
)

var (
	fmtIndent bool
	fmtCheck  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>...",
	Short: "Rewrite notebooks in canonical form",
	Long: `Decode and re-encode notebooks. Dropped cells are removed from the file and
unknown fields are discarded. A notebook with no valid cells is left untouched
and reported as a failure. With --check nothing is written and the command
fails if any file would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var extra []tsnotebook.Option
		if cmd.Flags().Changed("indent") {
			extra = append(extra, tsnotebook.WithIndent(fmtIndent))
		}
		ws, err := openWorkspace(extra...)
		if err != nil {
			return err
		}

		ctx := context.Background()
		out := cmd.OutOrStdout()
		dirty, failed := 0, 0
		for _, path := range args {
			if filepath.Ext(path) != store.Extension {
				return fmt.Errorf("%s: fmt only handles %s files", path, store.Extension)
			}
			res, err := ws.Store.Open(ctx, path)
			if err != nil {
				return err
			}
			if res.Report.Defaulted && res.Report.DefaultReason == codec.DefaultNoCells {
				fmt.Fprintf(out, "%s %s: no valid cells (%d dropped), left unchanged\n",
					failColor.Sprint("FAIL   "), path, len(res.Report.Dropped))
				printResult(cmd.ErrOrStderr(), res)
				failed++
				continue
			}
			if len(res.Report.Dropped) > 0 {
				printResult(cmd.ErrOrStderr(), res)
			}

			full := path
			if !filepath.IsAbs(path) {
				full = filepath.Join(ws.Root, path)
			}
			current, err := os.ReadFile(full)
			if err != nil {
				return fmt.Errorf("failed to read notebook: %w", err)
			}
			want, err := ws.Codec.Serialize(res.Document)
			if err != nil {
				return err
			}
			if bytes.Equal(bytes.TrimSuffix(current, []byte("\n")), want) {
				continue
			}

			dirty++
			if fmtCheck {
				fmt.Fprintf(out, "%s would be reformatted\n", path)
				continue
			}
			if err := ws.Store.Save(ctx, path, res.Document); err != nil {
				return err
			}
			fmt.Fprintf(out, "Formatted %s\n", path)
		}

		if failed > 0 || (fmtCheck && dirty > 0) {
			return errSilent
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtIndent, "indent", false, "Pretty-print with two-space indentation")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Report files that would change without writing")
}

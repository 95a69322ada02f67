package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/tsnotebook/pkg/codec"
	"github.com/aretw0/tsnotebook/pkg/core"
	"github.com/aretw0/tsnotebook/pkg/store"
)

var convertForce bool

var importCmd = &cobra.Command{
	Use:   "import <file.md> [file.tsqnb]",
	Short: "Create a notebook from a Markdown document",
	Long: `Turn a Markdown document into a notebook. Fenced code blocks become code cells
tagged with their info string (blocks without one become queries); the text
between them becomes Markdown cells.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(cmd, args, store.Extension)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.tsqnb> [file.md|-]",
	Short: "Render a notebook as Markdown",
	Long:  `Render a notebook as Markdown with one fenced block per code cell. Use - to write to stdout.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 && args[1] == "-" {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			res, err := ws.Store.Open(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(codec.ExportMarkdown(res.Document))
			return err
		}
		return convert(cmd, args, store.MarkdownExtension)
	},
}

// convert copies args[0] to args[1], deriving the destination from the
// source name and ext when it is omitted.
func convert(cmd *cobra.Command, args []string, ext string) error {
	src := args[0]
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ext
	if len(args) == 2 {
		dst = args[1]
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return fmt.Errorf("source and destination are the same file: %s", src)
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	full := dst
	if !filepath.IsAbs(dst) {
		full = filepath.Join(ws.Root, dst)
	}
	if _, err := os.Stat(full); err == nil && !convertForce {
		return fmt.Errorf("%w: %s (use --force to overwrite)", core.ErrExists, dst)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	res, err := ws.Store.Convert(context.Background(), src, dst)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d cells)\n", dst, res.Document.Len())
	if len(res.Report.Dropped) > 0 || res.Report.Defaulted {
		printResult(cmd.ErrOrStderr(), res)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	importCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "Overwrite an existing file")
	exportCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "Overwrite an existing file")
}

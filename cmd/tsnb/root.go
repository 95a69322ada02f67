package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/tsnotebook"
)

var (
	verbose    bool
	noColor    bool
	configPath string
	workDir    string
	lenient    bool
)

// errSilent marks failures whose details were already printed.
var errSilent = errors.New("command failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tsnb",
	Short: "Inspect and maintain tree-sitter query notebooks",
	Long: `tsnb works with .tsqnb notebooks: ordered cells of source code, tree-sitter
queries and Markdown notes stored as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)

		if noColor {
			color.NoColor = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// openWorkspace builds the workspace for the --dir flag (default: working directory).
func openWorkspace(extra ...tsnotebook.Option) (*tsnotebook.Workspace, error) {
	dir := workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	opts := []tsnotebook.Option{tsnotebook.WithLogger(slog.Default())}
	if configPath != "" {
		opts = append(opts, tsnotebook.WithConfigFile(configPath))
	}
	if lenient {
		opts = append(opts, tsnotebook.WithLenient(true))
	}
	return tsnotebook.New(dir, append(opts, extra...)...)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .tsnb.yaml configuration file")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "Notebook directory (default: working directory)")
	rootCmd.PersistentFlags().BoolVar(&lenient, "lenient", false, "Accept comments and trailing commas in notebooks")
}

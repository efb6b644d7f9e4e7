package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mojomls/internal/diagfmt"
	"mojomls/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:          "parse [flags] file.mojom",
	Short:        "Parse a single mojom file and report diagnostics",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Uint("max-errors", 0, "stop reporting after this many syntax errors (0 = unlimited)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxErrors, err := cmd.Flags().GetUint("max-errors")
	if err != nil {
		return fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.CheckFile(args[0], maxErrors, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	result.Bag.Sort()

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			ShowNotes: true,
			Context:   2,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			Max:              maxDiagnostics,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: %d diagnostics", args[0], result.Bag.Len())
	}
	return nil
}

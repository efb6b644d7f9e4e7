package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mojomls/internal/diagfmt"
	"mojomls/internal/driver"
	"mojomls/internal/project"
)

var checkCmd = &cobra.Command{
	Use:          "check [flags] [dir]",
	Short:        "Check every mojom file under a directory",
	Long:         `Check parses and indexes all *.mojom files under the project root, validating syntax, declarations and cross-file imports`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk index cache")
	checkCmd.Flags().Uint("max-errors", 0, "stop reporting after this many syntax errors per file (0 = unlimited)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	maxErrors, _ := cmd.Flags().GetUint("max-errors")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	var manifest *project.Manifest
	if root, ok, err := project.FindProjectRoot(dir); err == nil && ok {
		if m, err := project.LoadManifest(filepath.Join(root, project.ManifestName)); err == nil {
			manifest = &m
			dir = m.ImportRoot(root)
			if m.Check.MaxErrors > 0 && maxErrors == 0 {
				maxErrors = m.Check.MaxErrors
			}
		}
	}

	var cache *driver.DiskCache
	if !noCache {
		// A broken cache dir just means full reparses.
		cache, _ = driver.OpenDiskCache("mojomls")
	}

	_, fileSet, results, err := driver.CheckDir(cmd.Context(), dir, driver.CheckDirOptions{
		MaxErrors:      maxErrors,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
		Manifest:       manifest,
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
		Context:   2,
	}
	files, broken := 0, 0
	for _, res := range results {
		files++
		if res.Bag.Len() == 0 {
			continue
		}
		diagfmt.Pretty(os.Stderr, res.Bag, fileSet, opts)
		if res.Bag.HasErrors() {
			broken++
		}
	}

	if broken > 0 {
		return fmt.Errorf("%d of %d files have errors", broken, files)
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files, no errors\n", files)
	}
	return nil
}

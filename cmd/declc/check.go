package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"declc/internal/diag"
	"declc/internal/diagfmt"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Declare all input files and report diagnostics",
	Long: `Check loads the given declaration files, or the inputs listed in the
nearest declc.toml when none are given, declares every module and reports
problems. The exit status is 1 when any error was reported.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes")
	checkCmd.Flags().String("path-mode", "auto", "path display mode (auto|absolute|basename)")
	checkCmd.Flags().String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := parsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	minSeverityStr, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	minSeverity, err := diag.ParseSeverity(minSeverityStr)
	if err != nil {
		return err
	}

	paths, err := resolveInputs(args)
	if err != nil {
		return err
	}
	opts, showTimings, err := pipelineOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	res, err := runPipeline(cmd.Context(), paths, opts)
	if err != nil {
		return err
	}

	shown := res.Bag.Filter(minSeverity)
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		colored, colorErr := useColor(cmd, os.Stdout)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(out, shown, res.FileSet, diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "json":
		if err := diagfmt.JSON(out, shown, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
	}

	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	if res.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute":
		return diagfmt.PathModeAbsolute, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	default:
		return diagfmt.PathModeAuto, fmt.Errorf("invalid --path-mode %q (expected auto|absolute|basename)", s)
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"declc/internal/decl"
	"declc/internal/diagfmt"
	"declc/internal/snapshot"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] [files...]",
	Short: "Print the declared symbol table or module outlines",
	Long: `Dump runs the same pipeline as check and writes one of:
  text     the scope tree with every binding
  msgpack  a binary snapshot of the table
  header   the prototype outline of each module
  source   the definition outline of each module`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("format", "text", "output format (text|msgpack|header|source)")
	dumpCmd.Flags().String("module", "", "restrict header/source output to one module")
	dumpCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

func runDump(cmd *cobra.Command, args []string) (err error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "text", "msgpack", "header", "source":
	default:
		return fmt.Errorf("unsupported format %q (must be text, msgpack, header or source)", format)
	}
	moduleName, err := cmd.Flags().GetString("module")
	if err != nil {
		return fmt.Errorf("failed to get module flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if format == "msgpack" && outputPath == "" && isTerminal(os.Stdout) {
		return fmt.Errorf("refusing to write msgpack to a terminal; use -o")
	}

	paths, err := resolveInputs(args)
	if err != nil {
		return err
	}
	opts, _, err := pipelineOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	res, err := runPipeline(cmd.Context(), paths, opts)
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		if err := reportDiagnostics(cmd, res); err != nil {
			return err
		}
		return errHasErrors
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, createErr := os.Create(outputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", outputPath, createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close %s: %w", outputPath, closeErr)
			}
		}()
		out = f
	}
	return writeDump(out, res.Pass.Table(), format, moduleName)
}

func writeDump(out io.Writer, table *decl.Table, format, moduleName string) error {
	switch format {
	case "text":
		return snapshot.WriteText(out, snapshot.Build(table))
	case "msgpack":
		return snapshot.Encode(out, snapshot.Build(table))
	}

	found := false
	for _, m := range table.Modules() {
		if moduleName != "" && m.Name() != moduleName {
			continue
		}
		found = true
		text := m.Header()
		if format == "source" {
			text = m.Source()
		}
		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("failed to write outline: %w", err)
		}
	}
	if moduleName != "" && !found {
		return fmt.Errorf("unknown module %q", moduleName)
	}
	return nil
}

// reportDiagnostics prints the bag in pretty form on stderr.
func reportDiagnostics(cmd *cobra.Command, res *pipelineResult) error {
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     colored,
		ShowNotes: true,
	})
	return nil
}

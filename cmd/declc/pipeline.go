package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"declc/internal/ast"
	"declc/internal/decl"
	"declc/internal/declare"
	"declc/internal/diag"
	"declc/internal/manifest"
	"declc/internal/observ"
	"declc/internal/source"
	"declc/internal/trace"
)

type pipelineOptions struct {
	MaxDiagnostics int
	Jobs           int
	Timer          *observ.Timer
}

type pipelineResult struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	Pass    *declare.Pass
}

// runPipeline loads paths, declares everything and outlines the modules.
// Recoverable problems end up in the result's bag; the error is reserved
// for cancellation and internal compiler errors.
func runPipeline(ctx context.Context, paths []string, opts pipelineOptions) (res *pipelineResult, err error) {
	defer decl.Recover(&err)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "pipeline", 0)
	defer span.End(fmt.Sprintf("%d inputs", len(paths)))

	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	res = &pipelineResult{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	builder := ast.NewBuilder(ast.Hints{})

	var files []*manifest.File
	err = timer.Measure("load", func() (string, error) {
		var loadErr error
		files, loadErr = manifest.LoadAll(ctx, paths, manifest.LoadOptions{
			Jobs:     opts.Jobs,
			FileSet:  res.FileSet,
			Builder:  builder,
			Reporter: reporter,
		})
		return fmt.Sprintf("%d files", len(files)), loadErr
	})
	if err != nil {
		return nil, err
	}

	table := decl.NewTable(decl.Hints{}, nil, nil)
	res.Pass = declare.New(table, builder, declare.Options{Reporter: reporter})
	err = timer.Measure("declare", func() (string, error) {
		runErr := res.Pass.Run(ctx, files)
		return fmt.Sprintf("%d declarables", table.Decls.Len()), runErr
	})
	if err != nil {
		return nil, err
	}
	err = timer.Measure("outline", func() (string, error) {
		return fmt.Sprintf("%d modules", len(table.Modules())), res.Pass.Outline(ctx)
	})
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, &decl.InvariantError{Op: "Validate", Msg: err.Error()}
	}

	res.Bag.Sort()
	res.Bag.Dedup()
	return res, nil
}

// pipelineOptionsFromFlags reads the persistent flags shared by all commands.
func pipelineOptionsFromFlags(cmd *cobra.Command) (pipelineOptions, bool, error) {
	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return pipelineOptions{}, false, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return pipelineOptions{}, false, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	showTimings, err := flags.GetBool("timings")
	if err != nil {
		return pipelineOptions{}, false, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return pipelineOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Timer:          observ.NewTimer(),
	}, showTimings, nil
}

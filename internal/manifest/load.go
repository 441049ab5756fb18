package manifest

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"declc/internal/ast"
	"declc/internal/diag"
	"declc/internal/source"
	"declc/internal/trace"
)

// LoadOptions configures LoadAll.
type LoadOptions struct {
	// Jobs bounds the number of files read and parsed concurrently; zero
	// means GOMAXPROCS.
	Jobs     int
	FileSet  *source.FileSet
	Builder  *ast.Builder
	Reporter diag.Reporter
}

type loadSlot struct {
	content []byte
	readErr error
	parsed  parsed
}

// LoadAll reads and parses paths concurrently, then registers the files and
// converts them in input order so file IDs, AST handles and diagnostics are
// deterministic. Per-file problems are reported, not returned; the error is
// non-nil only when ctx is cancelled.
func LoadAll(ctx context.Context, paths []string, opts LoadOptions) ([]*File, error) {
	if opts.FileSet == nil {
		opts.FileSet = source.NewFileSet()
	}
	if opts.Builder == nil {
		opts.Builder = ast.NewBuilder(ast.Hints{})
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(paths) == 0 {
		return nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "load_manifests", 0)
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	slots := make([]loadSlot, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// #nosec G304 -- path is provided by the caller
			content, err := os.ReadFile(path)
			if err != nil {
				slots[i].readErr = err
				return nil
			}
			slots[i].content = content
			slots[i].parsed = parse(content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(paths))
	for i, path := range paths {
		slot := &slots[i]
		if slot.readErr != nil {
			diag.ReportError(opts.Reporter, diag.IOLoadFileError, source.Span{},
				fmt.Sprintf("%s: failed to read declaration file: %v", path, slot.readErr)).Emit()
			continue
		}
		fileID := opts.FileSet.AddBytes(path, slot.content)
		content := opts.FileSet.Get(fileID).Content
		// Normalization may shift offsets; parse again only when it did.
		p := slot.parsed
		if len(content) != len(slot.content) {
			p = parse(content)
		}
		files = append(files, convert(fileID, path, content, p, opts.Builder, opts.Reporter))
		trace.Point(tracer, trace.ScopeModule, "manifest", path, span.ID())
	}
	return files, nil
}

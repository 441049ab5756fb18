package declare

import (
	"context"
	"fmt"

	"declc/internal/ast"
	"declc/internal/decl"
	"declc/internal/diag"
	"declc/internal/manifest"
	"declc/internal/source"
	"declc/internal/trace"
	"declc/internal/types"
)

// Options configures a Pass.
type Options struct {
	Reporter diag.Reporter
}

// Pass owns the table under construction.
type Pass struct {
	table    *decl.Table
	builder  *ast.Builder
	reporter diag.Reporter
	ctx      *decl.Context
	tracer   trace.Tracer
	modules  map[string]*decl.Module
	eval     *Evaluator
	failed   map[failedKey]struct{}
}

// failedKey identifies a specialization that could not be built.
type failedKey struct {
	generic *decl.Generic
	args    types.VectorKey
}

// New creates a pass over table and declares the prelude in its global scope.
// builder must be the one the declaration files were decoded into.
func New(table *decl.Table, builder *ast.Builder, opts Options) *Pass {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := &Pass{
		table:    table,
		builder:  builder,
		reporter: opts.Reporter,
		tracer:   trace.Nop,
		modules:  make(map[string]*decl.Module),
		failed:   make(map[failedKey]struct{}),
	}
	p.ctx = decl.NewContext(table, decl.ContextOptions{Reporter: opts.Reporter})
	p.eval = NewEvaluator(builder)
	p.declarePrelude()
	return p
}

// Table returns the table being built.
func (p *Pass) Table() *decl.Table { return p.table }

// Evaluator returns the module-constant evaluator bound to this pass.
func (p *Pass) Evaluator() *Evaluator { return p.eval }

// Module returns the module declared under name, if any.
func (p *Pass) Module(name string) (*decl.Module, bool) {
	m, ok := p.modules[name]
	return m, ok
}

// Run declares everything in files. Top-level declarations go to the global
// scope before any module content so every module can use them. Recoverable
// problems are reported; the returned error is an *decl.InvariantError when
// a core contract broke.
func (p *Pass) Run(ctx context.Context, files []*manifest.File) (err error) {
	defer decl.Recover(&err)

	p.tracer = trace.FromContext(ctx)
	span := trace.Begin(p.tracer, trace.ScopePass, "declare", 0)
	defer span.End("")
	p.ctx = decl.NewContext(p.table, decl.ContextOptions{
		Reporter:    p.reporter,
		Tracer:      p.tracer,
		TraceParent: span.ID(),
	})

	for _, f := range files {
		p.declareTypes(p.table.Root(), &f.Global)
	}
	for _, f := range files {
		for i := range f.Modules {
			p.declareTypes(p.module(&f.Modules[i]).Scope(), &f.Modules[i])
		}
	}
	for _, f := range files {
		p.declareGlobals(&f.Global)
	}
	for _, f := range files {
		for i := range f.Modules {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.declareModule(&f.Modules[i], span.ID())
		}
	}
	for _, f := range files {
		for i := range f.Modules {
			p.declareSpecializations(&f.Modules[i])
		}
	}
	return nil
}

func (p *Pass) declarePrelude() {
	for _, bt := range p.table.Types.BuiltinNames() {
		p.ctx.DeclareTypeAlias(bt.Name, bt.ID, false)
	}
}

// module returns the module for name, creating it on first sight.
func (p *Pass) module(mf *manifest.Module) *decl.Module {
	if m, ok := p.modules[mf.Name]; ok {
		return m
	}
	defer p.ctx.EnterPosition(mf.Span)()
	m := p.ctx.DeclareModule(mf.Name)
	p.modules[mf.Name] = m
	return m
}

func (p *Pass) errorf(code diag.Code, at source.Span, format string, args ...any) {
	diag.ReportError(p.reporter, code, at, fmt.Sprintf(format, args...)).Emit()
}

func (p *Pass) warnf(code diag.Code, at source.Span, format string, args ...any) {
	diag.ReportWarning(p.reporter, code, at, fmt.Sprintf(format, args...)).Emit()
}

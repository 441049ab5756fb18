package decl

import (
	"declc/internal/diag"
	"declc/internal/source"
	"declc/internal/trace"
)

// ContextOptions configures a Context.
type ContextOptions struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// TraceParent is the span new declaration events are attached to.
	TraceParent uint64
}

// Context is the ambient state of the declaration pass: the current scope
// and source position every new declarable captures, plus the channels for
// diagnostics and trace events.
type Context struct {
	table       *Table
	scope       ScopeID
	pos         source.Span
	reporter    diag.Reporter
	tracer      trace.Tracer
	traceParent uint64
}

// NewContext starts at the table's global scope.
func NewContext(t *Table, opts ContextOptions) *Context {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Context{
		table:       t,
		scope:       t.Root(),
		reporter:    opts.Reporter,
		tracer:      opts.Tracer,
		traceParent: opts.TraceParent,
	}
}

func (c *Context) Table() *Table           { return c.table }
func (c *Context) Scope() ScopeID          { return c.scope }
func (c *Context) Pos() source.Span        { return c.pos }
func (c *Context) Reporter() diag.Reporter { return c.reporter }
func (c *Context) Tracer() trace.Tracer    { return c.tracer }

// EnterScope makes id the current scope and returns the function restoring
// the previous one.
func (c *Context) EnterScope(id ScopeID) (restore func()) {
	c.table.mustScope("EnterScope", id)
	prev := c.scope
	c.scope = id
	return func() { c.scope = prev }
}

// EnterPosition makes pos the current source position and returns the
// function restoring the previous one.
func (c *Context) EnterPosition(pos source.Span) (restore func()) {
	prev := c.pos
	c.pos = pos
	return func() { c.pos = prev }
}

// Enter combines EnterScope and EnterPosition.
func (c *Context) Enter(id ScopeID, pos source.Span) (restore func()) {
	leaveScope := c.EnterScope(id)
	leavePos := c.EnterPosition(pos)
	return func() {
		leavePos()
		leaveScope()
	}
}

// CurrentModule returns the module enclosing the current scope. Reaching the
// root without finding one is an invariant violation.
func (c *Context) CurrentModule() *Module {
	m, ok := c.table.ModuleOf(c.scope)
	if !ok {
		panic(invariantf("CurrentModule", "scope %d is not nested in any module", c.scope))
	}
	return m
}

func (c *Context) header(kind Kind) header {
	return header{kind: kind, parent: c.scope, pos: c.pos}
}

func (c *Context) traceDeclared(d Declarable, name string) {
	if !c.tracer.Enabled() {
		return
	}
	detail := ""
	if m, ok := c.table.ModuleOf(d.ParentScope()); ok {
		detail = m.Name()
	}
	trace.Point(c.tracer, trace.ScopeNode, d.TypeName()+":"+name, detail, c.traceParent)
}

package declare

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"declc/internal/decl"
	"declc/internal/diag"
	"declc/internal/trace"
	"declc/internal/types"
)

var returnWord = regexp.MustCompile(`\breturn\b`)

// Outline writes every module's header and source buffers and finalizes
// them. External callables and constants are provided by the host runtime
// and produce no text. Redeclared aliases repeat an earlier line and are
// skipped.
func (p *Pass) Outline(ctx context.Context) (err error) {
	defer decl.Recover(&err)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "outline", 0)
	defer span.End("")

	for _, m := range p.table.Modules() {
		if err := p.outlineModule(m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pass) outlineModule(m *decl.Module) error {
	w := outlineWriter{header: m.HeaderStream(), source: m.SourceStream()}
	w.headerf("// module %s\n", m.Name())
	w.sourcef("// module %s\n", m.Name())

	for _, name := range p.table.Names(m.Scope()) {
		for _, d := range p.table.LookupShallow(m.Scope(), name) {
			p.outlineDeclarable(&w, d)
		}
	}
	m.Finalize()
	if w.err != nil {
		return fmt.Errorf("module %s: %w", m.Name(), w.err)
	}
	return nil
}

func (p *Pass) outlineDeclarable(w *outlineWriter, d decl.Declarable) {
	typesIn := p.table.Types
	switch v := d.(type) {
	case *decl.TypeAlias:
		if v.IsRedeclaration() {
			return
		}
		t := typesIn.MustLookup(v.Type())
		if t.Kind == types.KindAbstract && t.Name == v.Name() {
			w.headerf("type %s extends %s;\n", v.Name(), types.Label(typesIn, t.Parent))
			return
		}
		w.headerf("type %s = %s;\n", v.Name(), types.Label(typesIn, v.Type()))
	case *decl.ModuleConstant:
		r := p.eval.Value(v)
		w.headerf("extern const %s: %s;\n", v.Name(), types.Label(typesIn, v.Type()))
		w.sourcef("const %s: %s = %s;\n", v.Name(), types.Label(typesIn, r.Type), r.Text)
	case decl.Callable:
		p.outlineCallable(w, v)
	}
}

func (p *Pass) outlineCallable(w *outlineWriter, c decl.Callable) {
	if c.IsExternal() {
		return
	}
	body, _ := c.Body()
	text := ""
	if stmt := p.builder.Stmts.Get(body); stmt != nil {
		text = stmt.Text
	}
	for range returnWord.FindAllStringIndex(text, -1) {
		c.IncrementReturns()
	}
	if c.Kind().IsMacro() && c.HasReturnValue() && !c.HasReturns() {
		p.warnf(diag.DeclMissingReturn, c.Pos(), "macro %q returns %s but its body has no return",
			c.Name(), types.Label(p.table.Types, c.Signature().ReturnType))
	}

	proto := c.TypeName() + " " + c.Name() + c.Signature().Format(p.table.Types)
	if c.IsTransitioning() {
		proto = "transitioning " + proto
	}
	w.headerf("%s;\n", proto)
	w.sourcef("%s {\n", proto)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		w.sourcef("  %s\n", line)
	}
	w.sourcef("}\n")
}

// outlineWriter keeps the first write error.
type outlineWriter struct {
	header io.Writer
	source io.Writer
	err    error
}

func (w *outlineWriter) headerf(format string, args ...any) { w.printf(w.header, format, args...) }
func (w *outlineWriter) sourcef(format string, args ...any) { w.printf(w.source, format, args...) }

func (w *outlineWriter) printf(dst io.Writer, format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(dst, format, args...)
}

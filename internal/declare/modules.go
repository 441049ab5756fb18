package declare

import (
	"fmt"

	"declc/internal/ast"
	"declc/internal/decl"
	"declc/internal/diag"
	"declc/internal/manifest"
	"declc/internal/source"
	"declc/internal/trace"
	"declc/internal/types"
)

// declareTypes binds every abstract type of mf as a TypeAlias in scope. A
// name already bound there is a redeclaration and keeps its type.
func (p *Pass) declareTypes(scope decl.ScopeID, mf *manifest.Module) {
	defer p.ctx.EnterScope(scope)()

	for _, td := range mf.Types {
		p.declareType(td)
	}
}

func (p *Pass) declareType(td manifest.TypeDecl) {
	defer p.ctx.EnterPosition(td.Span)()

	parent := p.table.Types.Builtins().Object
	if td.Extends.Name != "" {
		resolved, ok := p.resolveType(td.Extends)
		if !ok {
			return
		}
		parent = resolved
	}
	if prev, ok := p.localAlias(p.ctx.Scope(), td.Name); ok {
		t, _ := p.table.Types.Lookup(prev.Type())
		if t.Kind != types.KindAbstract || t.Name != td.Name || (td.Extends.Name != "" && t.Parent != parent) {
			p.conflict(td.Name, td.Span, prev, "a type extending "+types.Label(p.table.Types, parent))
		}
		p.ctx.DeclareTypeAlias(td.Name, prev.Type(), true)
		return
	}
	p.ctx.DeclareTypeAlias(td.Name, p.table.Types.RegisterAbstract(td.Name, parent), false)
}

func (p *Pass) declareModule(mf *manifest.Module, parentSpan uint64) {
	m := p.module(mf)
	span := trace.Begin(p.tracer, trace.ScopeModule, "module:"+m.Name(), parentSpan)
	defer span.End("")
	defer p.ctx.Enter(m.Scope(), mf.Span)()

	p.declareContents(mf)
}

// declareGlobals declares the top-level entries of a file in the global
// scope, where every module sees them.
func (p *Pass) declareGlobals(mf *manifest.Module) {
	defer p.ctx.EnterScope(p.table.Root())()
	p.declareContents(mf)
}

func (p *Pass) declareContents(mf *manifest.Module) {
	for _, ad := range mf.Aliases {
		p.declareAlias(ad)
	}
	for _, cd := range mf.Consts {
		p.declareConst(cd)
	}
	for _, ed := range mf.ExternConsts {
		p.declareExternConst(ed)
	}
	for i := range mf.Callables {
		p.declareCallable(&mf.Callables[i])
	}
	for _, gd := range mf.Generics {
		p.declareGeneric(gd)
	}
}

// declareAlias binds ad in the current scope. A redeclaration keeps the
// earlier type; a different type is reported.
func (p *Pass) declareAlias(ad manifest.AliasDecl) {
	defer p.ctx.EnterPosition(ad.Span)()

	ty, ok := p.resolveType(ad.Type)
	if !ok {
		return
	}
	if prev, redeclared := p.localAlias(p.ctx.Scope(), ad.Name); redeclared {
		if prev.Type() != ty {
			p.conflict(ad.Name, ad.Span, prev, types.Label(p.table.Types, ty))
		}
		p.ctx.DeclareTypeAlias(ad.Name, prev.Type(), true)
		return
	}
	p.ctx.DeclareTypeAlias(ad.Name, ty, false)
}

func (p *Pass) conflict(name string, at source.Span, prev *decl.TypeAlias, now string) {
	diag.ReportWarning(p.reporter, diag.DeclRedeclaration, at,
		fmt.Sprintf("%q redeclared as %s; keeping %s", name, now, types.Label(p.table.Types, prev.Type()))).
		WithNote(prev.Pos(), "first declared here").
		Emit()
}

func (p *Pass) declareConst(cd manifest.ConstDecl) {
	defer p.ctx.EnterPosition(cd.Span)()

	ty, ok := p.resolveType(cd.Type)
	if !ok {
		return
	}
	p.ctx.DeclareModuleConstant(cd.Name, ty, cd.Expr)
}

func (p *Pass) declareExternConst(ed manifest.ExternConstDecl) {
	defer p.ctx.EnterPosition(ed.Span)()

	ty, ok := p.resolveType(ed.Type)
	if !ok {
		return
	}
	p.ctx.DeclareExternConstant(ed.Name, ty, ed.Value)
}

func (p *Pass) declareCallable(cd *ast.CallableDecl) {
	defer p.ctx.EnterPosition(cd.Span)()

	sig, ok := p.signature(cd)
	if !ok {
		return
	}
	p.buildCallable(cd, sig, true)
}

// buildCallable constructs the callable cd describes in the current scope,
// registering it under its name when register is set.
func (p *Pass) buildCallable(cd *ast.CallableDecl, sig decl.Signature, register bool) decl.Callable {
	spec := decl.CallableSpec{
		Name:          cd.Name,
		Signature:     sig,
		Transitioning: cd.Transitioning,
		Body:          cd.Body,
	}
	var c decl.Callable
	switch cd.Kind {
	case ast.CallableMacro:
		m, err := p.ctx.NewMacro(spec)
		if err != nil {
			return nil
		}
		c = m
	case ast.CallableBuiltin:
		kind, ok := decl.ParseBuiltinKind(cd.BuiltinKind)
		if !ok {
			p.errorf(diag.DeclBadBuiltinKind, cd.Span, "builtin %q: unknown kind %q (expected stub, javascript or javascript-varargs)", cd.Name, cd.BuiltinKind)
			return nil
		}
		c = p.ctx.NewBuiltin(spec, kind)
	case ast.CallableRuntime:
		c = p.ctx.NewRuntimeFunction(cd.Name, sig, cd.Transitioning)
	default:
		return nil
	}
	if register {
		p.table.AddDeclarable(p.ctx.Scope(), cd.Name, c)
	}
	return c
}

func (p *Pass) declareGeneric(gd *ast.GenericDecl) {
	defer p.ctx.EnterPosition(gd.Span)()
	p.ctx.DeclareGeneric(gd.Callable.Name, gd)
}

// localAlias returns the last TypeAlias bound to name directly in scope.
func (p *Pass) localAlias(scope decl.ScopeID, name string) (*decl.TypeAlias, bool) {
	return lastAlias(p.table.LookupShallow(scope, name))
}

func lastAlias(found []decl.Declarable) (*decl.TypeAlias, bool) {
	for i := len(found) - 1; i >= 0; i-- {
		if a, ok := decl.DynamicCast[*decl.TypeAlias](found[i]); ok {
			return a, true
		}
	}
	return nil, false
}

package declare

import (
	"declc/internal/ast"
	"declc/internal/decl"
	"declc/internal/diag"
	"declc/internal/manifest"
	"declc/internal/types"
)

func (p *Pass) declareSpecializations(mf *manifest.Module) {
	if len(mf.Specializations) == 0 {
		return
	}
	m := p.module(mf)
	defer p.ctx.EnterScope(m.Scope())()

	for _, sd := range mf.Specializations {
		p.declareSpecialization(sd)
	}
}

func (p *Pass) declareSpecialization(sd manifest.SpecializeDecl) {
	defer p.ctx.EnterPosition(sd.Span)()

	g, ok := p.lookupGeneric(sd.Generic)
	if !ok {
		p.errorf(diag.DeclUnknownGeneric, sd.Span, "unknown generic %q", sd.Generic)
		return
	}
	args := make(types.Vector, 0, len(sd.Args))
	for _, te := range sd.Args {
		ty, resolved := p.resolveType(te)
		if !resolved {
			return
		}
		args = append(args, ty)
	}
	p.GetOrCreateSpecialization(decl.SpecializationKey{Generic: g, TypeArgs: args})
}

func (p *Pass) lookupGeneric(name string) (*decl.Generic, bool) {
	found := p.table.Lookup(p.ctx.Scope(), name)
	for i := len(found) - 1; i >= 0; i-- {
		if g, ok := decl.DynamicCast[*decl.Generic](found[i]); ok {
			return g, true
		}
	}
	return nil, false
}

// GetOrCreateSpecialization returns the cached callable for key or builds
// one: the type parameters are bound as TypeAliases in a fresh block scope
// under the generic's scope, the template is declared there, and the result
// is cached and added to the generic's scope under the generic's name.
// A key that failed once is reported once and then refused silently.
func (p *Pass) GetOrCreateSpecialization(key decl.SpecializationKey) (decl.Callable, bool) {
	g := key.Generic
	if c, ok := g.GetSpecialization(key.TypeArgs); ok {
		return c, true
	}
	fk := failedKey{generic: g, args: key.TypeArgs.Key()}
	if _, ok := p.failed[fk]; ok {
		return nil, false
	}
	c, ok := p.specialize(key)
	if !ok {
		p.failed[fk] = struct{}{}
	}
	return c, ok
}

func (p *Pass) specialize(key decl.SpecializationKey) (decl.Callable, bool) {
	g := key.Generic
	params := g.GenericParameters()
	if len(params) != len(key.TypeArgs) {
		p.errorf(diag.DeclGenericArity, p.ctx.Pos(), "generic %q expects %d type arguments, got %d",
			g.Name(), len(params), len(key.TypeArgs))
		return nil, false
	}

	gd := g.Declaration()
	if gd.Callable.Kind == ast.CallableMacro && gd.Callable.VarArgs {
		p.errorf(diag.DeclVarArgsMacro, gd.Span, "macro %q: varargs are not supported for macros", g.Name())
		return nil, false
	}
	frame := p.table.NewBlockScope(g.ParentScope(), gd.Span)
	defer p.ctx.Enter(frame, gd.Span)()

	for i, name := range params {
		p.ctx.DeclareTypeAlias(name, key.TypeArgs[i], false)
	}
	sig, ok := p.signature(&gd.Callable)
	if !ok {
		return nil, false
	}
	c := p.buildCallable(&gd.Callable, sig, false)
	if c == nil {
		return nil, false
	}
	g.AddSpecialization(key.TypeArgs, c)
	p.table.AddDeclarable(g.ParentScope(), g.Name(), c)
	return c, true
}

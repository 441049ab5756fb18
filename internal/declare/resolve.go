package declare

import (
	"declc/internal/ast"
	"declc/internal/decl"
	"declc/internal/diag"
	"declc/internal/types"
)

// resolveType looks name up from the current scope. The innermost TypeAlias
// wins; a name bound only to non-types, or not bound at all, is reported.
func (p *Pass) resolveType(te ast.TypeExpr) (types.TypeID, bool) {
	found := p.table.Lookup(p.ctx.Scope(), te.Name)
	if alias, ok := lastAlias(found); ok {
		return alias.Type(), true
	}
	at := te.Span
	if at.Empty() {
		at = p.ctx.Pos()
	}
	if len(found) > 0 {
		p.errorf(diag.DeclNotAType, at, "%q is a %s, not a type", te.Name, found[len(found)-1].TypeName())
		return types.NoTypeID, false
	}
	p.errorf(diag.DeclUnknownType, at, "unknown type %q", te.Name)
	return types.NoTypeID, false
}

// resolveReturn treats an omitted return type as void.
func (p *Pass) resolveReturn(te ast.TypeExpr) (types.TypeID, bool) {
	if te.Name == "" {
		return p.table.Types.Builtins().Void, true
	}
	return p.resolveType(te)
}

// signature resolves every type named by cd in the current scope. All
// failures are reported before giving up.
func (p *Pass) signature(cd *ast.CallableDecl) (decl.Signature, bool) {
	ok := true
	sig := decl.Signature{
		ParameterNames: make([]string, 0, len(cd.Params)),
		ParameterTypes: decl.ParameterTypes{
			Types:   make([]types.TypeID, 0, len(cd.Params)),
			VarArgs: cd.VarArgs,
		},
	}
	for _, param := range cd.Params {
		ty, resolved := p.resolveType(param.Type)
		ok = ok && resolved
		sig.ParameterNames = append(sig.ParameterNames, param.Name)
		sig.ParameterTypes.Types = append(sig.ParameterTypes.Types, ty)
	}
	ret, resolved := p.resolveReturn(cd.Return)
	ok = ok && resolved
	sig.ReturnType = ret
	for _, ld := range cd.Labels {
		label := decl.Label{Name: ld.Name}
		for _, te := range ld.Types {
			ty, resolved := p.resolveType(te)
			ok = ok && resolved
			label.Types = append(label.Types, ty)
		}
		sig.Labels = append(sig.Labels, label)
	}
	return sig, ok
}

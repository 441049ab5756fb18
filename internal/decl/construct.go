package decl

import (
	"fmt"

	"declc/internal/ast"
	"declc/internal/diag"
	"declc/internal/types"
)

// CallableSpec carries everything a Macro or Builtin is built from.
type CallableSpec struct {
	Name          string
	Signature     Signature
	Transitioning bool
	// Body is ast.NoStmtID for an external callable.
	Body ast.StmtID
}

// NewModule creates a module whose scope is nested in the current scope.
// Modules do not nest.
func (c *Context) NewModule(name string) *Module {
	if outer, ok := c.table.ModuleOf(c.scope); ok {
		panic(invariantf("NewModule", "module %q declared inside module %q", name, outer.name))
	}
	m := &Module{header: c.header(KindModule), name: name}
	id := c.table.Decls.New(m)
	m.scope = c.table.Scopes.New(ScopeModule, c.scope, id, c.pos)
	c.traceDeclared(m, name)
	return m
}

// DeclareModule creates a module and registers it in the current scope.
func (c *Context) DeclareModule(name string) *Module {
	m := c.NewModule(name)
	c.table.AddDeclarable(c.scope, name, m)
	return m
}

// NewExternConstant binds name to a literal provided by the host runtime.
func (c *Context) NewExternConstant(name string, typ types.TypeID, literal string) *ExternConstant {
	ec := &ExternConstant{valueSlot: valueSlot{header: c.header(KindExternConstant), typ: typ, name: name}}
	c.table.Decls.New(ec)
	ec.SetValue(Result{Type: typ, Text: literal})
	c.traceDeclared(ec, name)
	return ec
}

func (c *Context) DeclareExternConstant(name string, typ types.TypeID, literal string) *ExternConstant {
	ec := c.NewExternConstant(name, typ, literal)
	c.table.AddDeclarable(c.scope, name, ec)
	return ec
}

// NewModuleConstant creates a constant whose value is computed later from body.
func (c *Context) NewModuleConstant(name string, typ types.TypeID, body ast.ExprID) *ModuleConstant {
	mc := &ModuleConstant{
		valueSlot: valueSlot{header: c.header(KindModuleConstant), typ: typ, name: name},
		body:      body,
	}
	c.table.Decls.New(mc)
	c.traceDeclared(mc, name)
	return mc
}

func (c *Context) DeclareModuleConstant(name string, typ types.TypeID, body ast.ExprID) *ModuleConstant {
	mc := c.NewModuleConstant(name, typ, body)
	c.table.AddDeclarable(c.scope, name, mc)
	return mc
}

// NewMacro builds a macro. A variadic signature is reported at the current
// position and yields ErrVarArgsMacro; nothing is allocated in that case.
func (c *Context) NewMacro(spec CallableSpec) (*Macro, error) {
	if spec.Signature.ParameterTypes.VarArgs {
		diag.ReportError(c.reporter, diag.DeclVarArgsMacro, c.pos,
			fmt.Sprintf("macro %q: varargs are not supported for macros", spec.Name)).Emit()
		return nil, fmt.Errorf("macro %q: %w", spec.Name, ErrVarArgsMacro)
	}
	m := &Macro{}
	c.initCallable(&m.callableBase, KindMacro, spec)
	c.table.Decls.New(m)
	c.openCallableScope(&m.callableBase)
	c.traceDeclared(m, spec.Name)
	return m, nil
}

func (c *Context) DeclareMacro(spec CallableSpec) (*Macro, error) {
	m, err := c.NewMacro(spec)
	if err != nil {
		return nil, err
	}
	c.table.AddDeclarable(c.scope, spec.Name, m)
	return m, nil
}

// NewBuiltin builds a builtin with the given calling convention.
func (c *Context) NewBuiltin(spec CallableSpec, kind BuiltinKind) *Builtin {
	b := &Builtin{convention: kind}
	c.initCallable(&b.callableBase, KindBuiltin, spec)
	c.table.Decls.New(b)
	c.openCallableScope(&b.callableBase)
	c.traceDeclared(b, spec.Name)
	return b
}

func (c *Context) DeclareBuiltin(spec CallableSpec, kind BuiltinKind) *Builtin {
	b := c.NewBuiltin(spec, kind)
	c.table.AddDeclarable(c.scope, spec.Name, b)
	return b
}

// NewRuntimeFunction builds a runtime entry point. Runtime functions are
// always external.
func (c *Context) NewRuntimeFunction(name string, sig Signature, transitioning bool) *RuntimeFunction {
	rf := &RuntimeFunction{}
	c.initCallable(&rf.callableBase, KindRuntimeFunction, CallableSpec{
		Name:          name,
		Signature:     sig,
		Transitioning: transitioning,
	})
	c.table.Decls.New(rf)
	c.openCallableScope(&rf.callableBase)
	c.traceDeclared(rf, name)
	return rf
}

func (c *Context) DeclareRuntimeFunction(name string, sig Signature, transitioning bool) *RuntimeFunction {
	rf := c.NewRuntimeFunction(name, sig, transitioning)
	c.table.AddDeclarable(c.scope, name, rf)
	return rf
}

// NewGeneric wraps a template declaration with an empty specialization cache.
func (c *Context) NewGeneric(name string, declaration *ast.GenericDecl) *Generic {
	if declaration == nil {
		panic(invariantf("NewGeneric", "generic %q has no declaration", name))
	}
	g := &Generic{
		header:          c.header(KindGeneric),
		name:            name,
		declaration:     declaration,
		specializations: make(map[types.VectorKey]Callable),
	}
	c.table.Decls.New(g)
	c.traceDeclared(g, name)
	return g
}

func (c *Context) DeclareGeneric(name string, declaration *ast.GenericDecl) *Generic {
	g := c.NewGeneric(name, declaration)
	c.table.AddDeclarable(c.scope, name, g)
	return g
}

// NewTypeAlias binds name to typ.
func (c *Context) NewTypeAlias(name string, typ types.TypeID, redeclaration bool) *TypeAlias {
	a := &TypeAlias{header: c.header(KindTypeAlias), name: name, typ: typ, redeclaration: redeclaration}
	c.table.Decls.New(a)
	c.traceDeclared(a, name)
	return a
}

func (c *Context) DeclareTypeAlias(name string, typ types.TypeID, redeclaration bool) *TypeAlias {
	a := c.NewTypeAlias(name, typ, redeclaration)
	c.table.AddDeclarable(c.scope, name, a)
	return a
}

func (c *Context) initCallable(cb *callableBase, kind Kind, spec CallableSpec) {
	cb.header = c.header(kind)
	cb.name = spec.Name
	cb.sig = spec.Signature.Clone()
	cb.transitioning = spec.Transitioning
	cb.body = spec.Body
	cb.hasReturnValue = !c.table.Types.IsVoidOrNever(spec.Signature.ReturnType)
}

func (c *Context) openCallableScope(cb *callableBase) {
	cb.scope = c.table.Scopes.New(ScopeCallable, c.scope, cb.id, c.pos)
}

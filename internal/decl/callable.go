package decl

import (
	"slices"
	"strings"

	"declc/internal/ast"
	"declc/internal/types"
)

// ParameterTypes lists parameter types and whether the list is variadic.
type ParameterTypes struct {
	Types   []types.TypeID
	VarArgs bool
}

// Label is a declared exit label with the types it carries.
type Label struct {
	Name  string
	Types []types.TypeID
}

// Signature describes how a callable is invoked.
type Signature struct {
	ParameterNames []string
	ParameterTypes ParameterTypes
	ReturnType     types.TypeID
	Labels         []Label
}

// Clone returns a deep copy.
func (s Signature) Clone() Signature {
	out := Signature{
		ParameterNames: slices.Clone(s.ParameterNames),
		ParameterTypes: ParameterTypes{
			Types:   slices.Clone(s.ParameterTypes.Types),
			VarArgs: s.ParameterTypes.VarArgs,
		},
		ReturnType: s.ReturnType,
	}
	if len(s.Labels) > 0 {
		out.Labels = make([]Label, len(s.Labels))
		for i, l := range s.Labels {
			out.Labels[i] = Label{Name: l.Name, Types: slices.Clone(l.Types)}
		}
	}
	return out
}

// Format renders "(int32 a, int32 b, ...): int32 labels Overflow".
func (s Signature) Format(typesIn *types.Interner) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, ty := range s.ParameterTypes.Types {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(types.Label(typesIn, ty))
		if i < len(s.ParameterNames) && s.ParameterNames[i] != "" {
			b.WriteByte(' ')
			b.WriteString(s.ParameterNames[i])
		}
	}
	if s.ParameterTypes.VarArgs {
		if len(s.ParameterTypes.Types) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString("): ")
	b.WriteString(types.Label(typesIn, s.ReturnType))
	if len(s.Labels) > 0 {
		b.WriteString(" labels ")
		for i, l := range s.Labels {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(l.Name)
			if len(l.Types) > 0 {
				b.WriteByte('(')
				b.WriteString(types.Vector(l.Types).Label(typesIn))
				b.WriteByte(')')
			}
		}
	}
	return b.String()
}

// Callable is the family of invocable declarables.
type Callable interface {
	Declarable
	Name() string
	Signature() Signature
	ParameterNames() []string
	HasReturnValue() bool
	IncrementReturns()
	HasReturns() bool
	Returns() int
	IsTransitioning() bool
	Body() (ast.StmtID, bool)
	IsExternal() bool
	// BodyScope is the scope of the callable's body.
	BodyScope() ScopeID

	callable() *callableBase
}

type callableBase struct {
	header
	name           string
	sig            Signature
	transitioning  bool
	returns        int
	body           ast.StmtID
	scope          ScopeID
	hasReturnValue bool
}

func (c *callableBase) Name() string             { return c.name }
func (c *callableBase) Signature() Signature     { return c.sig.Clone() }
func (c *callableBase) ParameterNames() []string { return slices.Clone(c.sig.ParameterNames) }

// HasReturnValue is false when the return type is void or never.
func (c *callableBase) HasReturnValue() bool { return c.hasReturnValue }

// IncrementReturns records one more reachable return in the body.
func (c *callableBase) IncrementReturns() { c.returns++ }

func (c *callableBase) HasReturns() bool      { return c.returns > 0 }
func (c *callableBase) Returns() int          { return c.returns }
func (c *callableBase) IsTransitioning() bool { return c.transitioning }

func (c *callableBase) Body() (ast.StmtID, bool) { return c.body, c.body.IsValid() }

// IsExternal is true when no body was supplied: the operation is implemented
// by hand outside the language and must never be code-generated.
func (c *callableBase) IsExternal() bool { return !c.body.IsValid() }

func (c *callableBase) BodyScope() ScopeID      { return c.scope }
func (c *callableBase) callable() *callableBase { return c }

// Macro is a callable inlined at its call sites. It never takes varargs.
type Macro struct {
	callableBase
}

// BuiltinKind is a builtin's calling convention.
type BuiltinKind uint8

const (
	BuiltinStub BuiltinKind = iota
	BuiltinFixedArgsJS
	BuiltinVarArgsJS
)

func (k BuiltinKind) String() string {
	switch k {
	case BuiltinStub:
		return "stub"
	case BuiltinFixedArgsJS:
		return "javascript"
	case BuiltinVarArgsJS:
		return "javascript-varargs"
	default:
		return "unknown"
	}
}

// ParseBuiltinKind accepts the spellings produced by BuiltinKind.String.
func ParseBuiltinKind(s string) (BuiltinKind, bool) {
	switch s {
	case "", "stub":
		return BuiltinStub, true
	case "javascript":
		return BuiltinFixedArgsJS, true
	case "javascript-varargs":
		return BuiltinVarArgsJS, true
	default:
		return BuiltinStub, false
	}
}

// Builtin is a callable compiled into its own code object.
type Builtin struct {
	callableBase
	convention BuiltinKind
}

func (b *Builtin) BuiltinKind() BuiltinKind { return b.convention }
func (b *Builtin) IsStub() bool             { return b.convention == BuiltinStub }
func (b *Builtin) IsFixedArgsJS() bool      { return b.convention == BuiltinFixedArgsJS }
func (b *Builtin) IsVarArgsJS() bool        { return b.convention == BuiltinVarArgsJS }

// RuntimeFunction names an entry point of the host runtime. It never has a body.
type RuntimeFunction struct {
	callableBase
}

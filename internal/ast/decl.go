package ast

import "declc/internal/source"

// TypeExpr names a type as written; resolution happens in the declaration pass.
type TypeExpr struct {
	Name string
	Span source.Span
}

type Param struct {
	Name string
	Type TypeExpr
}

type LabelDecl struct {
	Name  string
	Types []TypeExpr
}

// CallableKind tells which callable a declaration (or a generic template) produces.
type CallableKind uint8

const (
	CallableMacro CallableKind = iota
	CallableBuiltin
	CallableRuntime
)

func (k CallableKind) String() string {
	switch k {
	case CallableMacro:
		return "macro"
	case CallableBuiltin:
		return "builtin"
	case CallableRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// CallableDecl is the unresolved form of a macro, builtin or runtime function.
type CallableDecl struct {
	Kind          CallableKind
	Name          string
	Span          source.Span
	Params        []Param
	VarArgs       bool
	Return        TypeExpr
	Labels        []LabelDecl
	Transitioning bool
	BuiltinKind   string
	Body          StmtID
}

// GenericDecl is a callable template: ordered type-parameter names over an
// unresolved callable whose types may mention them.
type GenericDecl struct {
	Span       source.Span
	TypeParams []string
	Callable   CallableDecl
}

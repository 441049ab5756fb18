package manifest

import (
	"declc/internal/ast"
	"declc/internal/source"
)

// File is one decoded declaration file. Global holds the declarations made
// outside any [[module]] block; its Name is empty.
type File struct {
	Path    string
	FileID  source.FileID
	Global  Module
	Modules []Module
}

// Module is one [[module]] block. The same module name may appear in
// several blocks and files; the declaration pass reopens it.
type Module struct {
	Name            string
	Span            source.Span
	Types           []TypeDecl
	Aliases         []AliasDecl
	Consts          []ConstDecl
	ExternConsts    []ExternConstDecl
	Callables       []ast.CallableDecl
	Generics        []*ast.GenericDecl
	Specializations []SpecializeDecl
}

// TypeDecl introduces an abstract named type.
type TypeDecl struct {
	Name    string
	Extends ast.TypeExpr // empty Name means no parent
	Span    source.Span
}

type AliasDecl struct {
	Name string
	Type ast.TypeExpr
	Span source.Span
}

// ConstDecl is a module constant computed from Expr.
type ConstDecl struct {
	Name string
	Type ast.TypeExpr
	Expr ast.ExprID
	Span source.Span
}

// ExternConstDecl binds Name to a literal provided by the host runtime.
type ExternConstDecl struct {
	Name  string
	Type  ast.TypeExpr
	Value string
	Span  source.Span
}

// SpecializeDecl requests an explicit instantiation of a generic.
type SpecializeDecl struct {
	Generic string
	Args    []ast.TypeExpr
	Span    source.Span
}

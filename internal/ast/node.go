package ast

import "declc/internal/source"

// Expr is an unevaluated expression as written in a declaration file.
type Expr struct {
	Span source.Span
	Text string
}

// Stmt is an unelaborated statement body as written in a declaration file.
type Stmt struct {
	Span source.Span
	Text string
}

type Exprs struct {
	Arena *Arena[Expr]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{Arena: NewArena[Expr](capHint)}
}

func (e *Exprs) New(span source.Span, text string) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Span: span, Text: text}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{Arena: NewArena[Stmt](capHint)}
}

func (s *Stmts) New(span source.Span, text string) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Span: span, Text: text}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

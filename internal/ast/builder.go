package ast

type Hints struct{ Stmts, Exprs uint }

// Builder owns the node arenas of one compilation.
type Builder struct {
	Stmts    *Stmts
	Exprs    *Exprs
	Generics []*GenericDecl
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 6
	}
	return &Builder{
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// NewGeneric records a generic declaration; the pointer stays valid for the
// whole compilation.
func (b *Builder) NewGeneric(decl GenericDecl) *GenericDecl {
	g := &decl
	b.Generics = append(b.Generics, g)
	return g
}

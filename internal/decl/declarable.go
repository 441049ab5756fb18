package decl

import (
	"declc/internal/source"
)

// Declarable is any named entity introduced by a declaration. The set of
// implementations is closed: *Module, *Macro, *Builtin, *RuntimeFunction,
// *Generic, *TypeAlias, *ExternConstant and *ModuleConstant.
type Declarable interface {
	ID() ID
	Kind() Kind
	TypeName() string
	// ParentScope is the scope that was current when the declarable was built.
	ParentScope() ScopeID
	Pos() source.Span

	base() *header
}

// header is embedded by every concrete declarable. All fields are fixed at
// construction.
type header struct {
	id     ID
	kind   Kind
	parent ScopeID
	pos    source.Span
}

func (h *header) ID() ID               { return h.id }
func (h *header) Kind() Kind           { return h.kind }
func (h *header) TypeName() string     { return h.kind.TypeName() }
func (h *header) ParentScope() ScopeID { return h.parent }
func (h *header) Pos() source.Span     { return h.pos }
func (h *header) base() *header        { return h }

// Cast converts d to T, which is a concrete declarable pointer type or one of
// the Value and Callable families. A nil d or a kind mismatch is an invariant
// violation.
func Cast[T Declarable](d Declarable) T {
	t, ok := DynamicCast[T](d)
	if !ok {
		var zero T
		if isNil(d) {
			panic(invariantf("Cast", "cannot cast nil declarable to %T", zero))
		}
		panic(invariantf("Cast", "cannot cast %s %d to %T", d.Kind(), d.ID(), zero))
	}
	return t
}

// DynamicCast converts d to T, returning false for a nil d or a kind mismatch.
// A typed nil pointer counts as nil.
func DynamicCast[T Declarable](d Declarable) (T, bool) {
	var zero T
	if isNil(d) {
		return zero, false
	}
	t, ok := d.(T)
	return t, ok
}

func isNil(d Declarable) bool {
	switch v := d.(type) {
	case nil:
		return true
	case *Module:
		return v == nil
	case *Macro:
		return v == nil
	case *Builtin:
		return v == nil
	case *RuntimeFunction:
		return v == nil
	case *Generic:
		return v == nil
	case *TypeAlias:
		return v == nil
	case *ExternConstant:
		return v == nil
	case *ModuleConstant:
		return v == nil
	}
	return false
}

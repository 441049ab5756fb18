package decl

import (
	"testing"

	"declc/internal/ast"
	"declc/internal/source"
)

func TestKindCapabilities(t *testing.T) {
	cases := []struct {
		kind     Kind
		typeName string
		value    bool
		callable bool
	}{
		{KindModule, "module", false, false},
		{KindMacro, "macro", false, true},
		{KindBuiltin, "builtin", false, true},
		{KindRuntimeFunction, "runtime", false, true},
		{KindGeneric, "generic", false, false},
		{KindTypeAlias, "type_alias", false, false},
		{KindExternConstant, "constant", true, false},
		{KindModuleConstant, "constant", true, false},
		{KindInvalid, "<<unknown>>", false, false},
	}
	for _, tc := range cases {
		if got := tc.kind.TypeName(); got != tc.typeName {
			t.Errorf("%v: TypeName = %q, want %q", tc.kind, got, tc.typeName)
		}
		if tc.kind.IsValue() != tc.value {
			t.Errorf("%v: IsValue = %v", tc.kind, tc.kind.IsValue())
		}
		if tc.kind.IsCallable() != tc.callable {
			t.Errorf("%v: IsCallable = %v", tc.kind, tc.kind.IsCallable())
		}
	}
}

func TestCastAndDynamicCast(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	ec := ctx.NewExternConstant("kZero", b.Int32, "0")
	var d Declarable = ec

	if got := Cast[*ExternConstant](d); got != ec {
		t.Fatalf("Cast returned a different instance")
	}
	if v, ok := DynamicCast[Value](d); !ok || v.Name() != "kZero" {
		t.Fatalf("expected Value family cast to succeed")
	}
	if _, ok := DynamicCast[*Macro](d); ok {
		t.Fatalf("constant must not cast to macro")
	}
	if _, ok := DynamicCast[Callable](d); ok {
		t.Fatalf("constant must not cast to callable")
	}
	if _, ok := DynamicCast[*Module](nil); ok {
		t.Fatalf("nil must not cast")
	}

	ie := mustPanic(t, func() { Cast[*Macro](d) })
	if ie.Op != "Cast" {
		t.Fatalf("unexpected op %q", ie.Op)
	}
	mustPanic(t, func() { Cast[*Module](nil) })
}

func TestTypedNilDoesNotCast(t *testing.T) {
	var d Declarable = (*Macro)(nil)
	if m, ok := DynamicCast[*Macro](d); ok || m != nil {
		t.Fatalf("typed nil macro must not cast, got %v, %v", m, ok)
	}
	if _, ok := DynamicCast[Callable](d); ok {
		t.Fatalf("typed nil macro must not cast to callable")
	}
	if _, ok := DynamicCast[Value](Declarable((*ExternConstant)(nil))); ok {
		t.Fatalf("typed nil constant must not cast to value")
	}
	ie := mustPanic(t, func() { Cast[*Macro](d) })
	if ie.Op != "Cast" {
		t.Fatalf("unexpected op %q", ie.Op)
	}
}

func TestDeclarableCapturesAmbientContext(t *testing.T) {
	ctx, _ := newTestContext(t)
	m := ctx.DeclareModule("M")
	restore := ctx.Enter(m.Scope(), span(10, 20))
	g := ctx.DeclareGeneric("Id", &ast.GenericDecl{TypeParams: []string{"T"}})
	restore()

	if g.ParentScope() != m.Scope() {
		t.Fatalf("expected parent scope %d, got %d", m.Scope(), g.ParentScope())
	}
	if g.Pos() != span(10, 20) {
		t.Fatalf("unexpected position %v", g.Pos())
	}
	if ctx.Scope() != ctx.Table().Root() || ctx.Pos() != (source.Span{}) {
		t.Fatalf("context was not restored: scope %d pos %v", ctx.Scope(), ctx.Pos())
	}
	if ctx.Table().Get(g.ID()) != Declarable(g) {
		t.Fatalf("table does not resolve the generic by id")
	}
}

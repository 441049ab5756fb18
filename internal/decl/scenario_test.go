package decl

import (
	"errors"
	"testing"

	"declc/internal/types"
)

func TestScenarioExternConstantVisibleFromNestedBlock(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()

	m := ctx.DeclareModule("M")
	restore := ctx.EnterScope(m.Scope())
	ec := ctx.DeclareExternConstant("kZero", b.Int32, "0")
	block := ctx.Table().NewBlockScope(m.Scope(), span(0, 0))
	restore()

	got := ctx.Table().Lookup(block, "kZero")
	if len(got) != 1 || got[0] != Declarable(ec) {
		t.Fatalf("expected exactly the extern constant, got %v", got)
	}
	v := Cast[Value](got[0])
	if r, ok := v.Value(); !ok || r.Text != "0" {
		t.Fatalf("unexpected value %+v", r)
	}
}

func TestScenarioGenericCacheProtocol(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	g := newIdentity(t, ctx)

	if _, ok := g.GetSpecialization(types.Vector{b.Int32}); ok {
		t.Fatalf("expected miss before instantiation")
	}
	identityInt32, err := ctx.NewMacro(CallableSpec{Name: "Identity", Signature: sigReturning(b.Int32, b.Int32)})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	g.AddSpecialization(types.Vector{b.Int32}, identityInt32)

	if got, ok := g.GetSpecialization(types.Vector{b.Int32}); !ok || got != Callable(identityInt32) {
		t.Fatalf("expected cached identityInt32")
	}
	if _, ok := g.GetSpecialization(types.Vector{b.Float64}); ok {
		t.Fatalf("float64 must remain absent")
	}
}

func TestScenarioVarArgsMacroIsUnusable(t *testing.T) {
	ctx, bag := newTestContext(t)
	sig := sigReturning(ctx.Table().Types.Builtins().Void)
	sig.ParameterTypes.VarArgs = true

	m, err := ctx.DeclareMacro(CallableSpec{Name: "Foo", Signature: sig})
	if m != nil || !errors.Is(err, ErrVarArgsMacro) {
		t.Fatalf("expected rejected macro, got %v / %v", m, err)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a recorded error")
	}
	for _, d := range ctx.Table().Decls.All() {
		if d.Kind() == KindMacro {
			t.Fatalf("a macro instance exists after rejection")
		}
	}
}

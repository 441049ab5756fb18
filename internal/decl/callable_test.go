package decl

import (
	"errors"
	"testing"

	"declc/internal/ast"
	"declc/internal/diag"
	"declc/internal/source"
)

func TestMacroRejectsVarArgs(t *testing.T) {
	ctx, bag := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	before := ctx.Table().Decls.Len()

	sig := sigReturning(b.Int32, b.Int32)
	sig.ParameterTypes.VarArgs = true
	restore := ctx.EnterPosition(span(4, 9))
	m, err := ctx.DeclareMacro(CallableSpec{Name: "Foo", Signature: sig})
	restore()

	if m != nil {
		t.Fatalf("expected no macro")
	}
	if !errors.Is(err, ErrVarArgsMacro) {
		t.Fatalf("expected ErrVarArgsMacro, got %v", err)
	}
	if ctx.Table().Decls.Len() != before {
		t.Fatalf("rejected macro was allocated")
	}
	if got := ctx.Table().LookupShallow(ctx.Table().Root(), "Foo"); len(got) != 0 {
		t.Fatalf("rejected macro was registered")
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.DeclVarArgsMacro || items[0].Primary != span(4, 9) {
		t.Fatalf("unexpected diagnostics: %+v", items)
	}
}

func TestBuiltinAndRuntimeAcceptVarArgs(t *testing.T) {
	ctx, bag := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	sig := sigReturning(b.Object)
	sig.ParameterTypes.VarArgs = true

	bi := ctx.DeclareBuiltin(CallableSpec{Name: "ArrayPush", Signature: sig}, BuiltinVarArgsJS)
	rf := ctx.DeclareRuntimeFunction("Throw", sig, true)

	if !bi.IsVarArgsJS() || bi.IsStub() || bi.IsFixedArgsJS() {
		t.Fatalf("unexpected builtin kind %v", bi.BuiltinKind())
	}
	if !bi.Signature().ParameterTypes.VarArgs || !rf.Signature().ParameterTypes.VarArgs {
		t.Fatalf("varargs flag lost")
	}
	if !rf.IsExternal() || !rf.IsTransitioning() {
		t.Fatalf("runtime function must be external and keep transitioning flag")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestCallableBodyAndReturns(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	stmts := ast.NewStmts(4)
	body := stmts.New(source.Span{}, "return a;")

	m, err := ctx.NewMacro(CallableSpec{Name: "Id", Signature: sigReturning(b.Int32, b.Int32), Body: body})
	if err != nil {
		t.Fatalf("new macro: %v", err)
	}
	if m.IsExternal() {
		t.Fatalf("macro with body is not external")
	}
	if got, ok := m.Body(); !ok || got != body {
		t.Fatalf("unexpected body %v", got)
	}
	if !m.HasReturnValue() {
		t.Fatalf("int32 macro has a return value")
	}
	if m.HasReturns() {
		t.Fatalf("no returns recorded yet")
	}
	m.IncrementReturns()
	m.IncrementReturns()
	if !m.HasReturns() || m.Returns() != 2 {
		t.Fatalf("expected 2 returns, got %d", m.Returns())
	}

	ext := ctx.NewBuiltin(CallableSpec{Name: "Ext", Signature: sigReturning(b.Void)}, BuiltinStub)
	if !ext.IsExternal() {
		t.Fatalf("builtin without body is external")
	}
	if _, ok := ext.Body(); ok {
		t.Fatalf("external builtin reports a body")
	}
}

func TestHasReturnValue(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	for _, tc := range []struct {
		name string
		sig  Signature
		want bool
	}{
		{"void", sigReturning(b.Void), false},
		{"never", sigReturning(b.Never), false},
		{"int32", sigReturning(b.Int32), true},
		{"object", sigReturning(b.Object), true},
	} {
		rf := ctx.NewRuntimeFunction(tc.name, tc.sig, false)
		if rf.HasReturnValue() != tc.want {
			t.Errorf("%s: HasReturnValue = %v, want %v", tc.name, rf.HasReturnValue(), tc.want)
		}
	}
}

func TestSignatureIsCopied(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	sig := sigReturning(b.Int32, b.Int32, b.Int32)
	sig.Labels = []Label{{Name: "Overflow", Types: nil}}

	rf := ctx.NewRuntimeFunction("Add", sig, false)
	sig.ParameterNames[0] = "changed"
	sig.Labels[0].Name = "changed"

	got := rf.Signature()
	if got.ParameterNames[0] != "a" || got.Labels[0].Name != "Overflow" {
		t.Fatalf("signature aliases the caller's slices: %+v", got)
	}
	got.ParameterNames[1] = "changed"
	if rf.ParameterNames()[1] != "b" {
		t.Fatalf("signature read aliases internal slices")
	}
	if want := "(int32 a, int32 b): int32 labels Overflow"; got.Format(ctx.Table().Types) != want {
		t.Fatalf("Format = %q, want %q", got.Format(ctx.Table().Types), want)
	}
}

func TestCallableOwnsScope(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	m := ctx.DeclareModule("M")
	defer ctx.EnterScope(m.Scope())()

	bi := ctx.DeclareBuiltin(CallableSpec{Name: "B", Signature: sigReturning(b.Void)}, BuiltinFixedArgsJS)
	scope := ctx.Table().Scopes.Get(bi.BodyScope())
	if scope == nil || scope.Kind != ScopeCallable || scope.Parent != m.Scope() || scope.Owner != bi.ID() {
		t.Fatalf("unexpected callable scope %+v", scope)
	}
	if owner := ctx.Table().Owner(bi.BodyScope()); owner != Declarable(bi) {
		t.Fatalf("owner lookup failed")
	}
}

func TestParseBuiltinKind(t *testing.T) {
	for _, k := range []BuiltinKind{BuiltinStub, BuiltinFixedArgsJS, BuiltinVarArgsJS} {
		got, ok := ParseBuiltinKind(k.String())
		if !ok || got != k {
			t.Fatalf("round trip of %v failed", k)
		}
	}
	if _, ok := ParseBuiltinKind("wasm"); ok {
		t.Fatalf("unknown kind accepted")
	}
}

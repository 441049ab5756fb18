package decl

import (
	"testing"

	"declc/internal/types"
)

func TestLookupParentResultsFirst(t *testing.T) {
	ctx, _ := newTestContext(t)
	table := ctx.Table()
	b := table.Types.Builtins()

	outer := ctx.DeclareTypeAlias("T", b.Int32, false)
	m := ctx.DeclareModule("M")
	leave := ctx.EnterScope(m.Scope())
	inner := ctx.DeclareTypeAlias("T", b.Float64, false)
	block := table.NewBlockScope(m.Scope(), span(0, 1))
	leave()

	got := table.Lookup(block, "T")
	if len(got) != 2 || got[0] != Declarable(outer) || got[1] != Declarable(inner) {
		t.Fatalf("expected [outer inner], got %v", got)
	}
	if shallow := table.LookupShallow(block, "T"); len(shallow) != 0 {
		t.Fatalf("expected empty shallow lookup in block, got %d", len(shallow))
	}
	if shallow := table.LookupShallow(m.Scope(), "T"); len(shallow) != 1 || shallow[0] != Declarable(inner) {
		t.Fatalf("unexpected shallow lookup in module: %v", shallow)
	}
}

func TestLookupEqualsParentPlusShallow(t *testing.T) {
	ctx, _ := newTestContext(t)
	table := ctx.Table()
	b := table.Types.Builtins()

	ctx.DeclareExternConstant("k", b.Int32, "1")
	m := ctx.DeclareModule("M")
	defer ctx.EnterScope(m.Scope())()
	ctx.DeclareExternConstant("k", b.Int32, "2")
	ctx.DeclareExternConstant("k", b.Int32, "3")
	block := table.NewBlockScope(m.Scope(), span(0, 1))

	for _, scope := range []ScopeID{table.Root(), m.Scope(), block} {
		want := append(table.Lookup(table.Parent(scope), "k"), table.LookupShallow(scope, "k")...)
		got := table.Lookup(scope, "k")
		if len(got) != len(want) {
			t.Fatalf("scope %d: expected %d results, got %d", scope, len(want), len(got))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("scope %d: result %d differs", scope, i)
			}
		}
	}
}

func TestLookupUnknownNameDoesNotIntern(t *testing.T) {
	ctx, _ := newTestContext(t)
	table := ctx.Table()
	before := table.Strings.Len()
	if got := table.Lookup(table.Root(), "missing"); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
	if table.Strings.Len() != before {
		t.Fatalf("lookup interned a new string")
	}
}

func TestAddDeclarableKeepsOverloadsInOrder(t *testing.T) {
	ctx, _ := newTestContext(t)
	table := ctx.Table()
	b := table.Types.Builtins()

	first := ctx.DeclareRuntimeFunction("F", sigReturning(b.Int32, b.Int32), false)
	ctx.DeclareTypeAlias("Other", b.Bool, false)
	second := ctx.DeclareRuntimeFunction("F", sigReturning(b.Int32, b.Float64), false)

	got := table.LookupShallow(table.Root(), "F")
	if len(got) != 2 || got[0] != Declarable(first) || got[1] != Declarable(second) {
		t.Fatalf("unexpected overload order: %v", got)
	}
	names := table.Names(table.Root())
	if len(names) != 2 || names[0] != "F" || names[1] != "Other" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestAddDeclarableRejectsForeignDeclarable(t *testing.T) {
	ctx, _ := newTestContext(t)
	other, _ := newTestContext(t)
	alias := other.NewTypeAlias("X", types.NoTypeID, false)
	mustPanic(t, func() {
		ctx.Table().AddDeclarable(ctx.Table().Root(), "X", alias)
	})
	mustPanic(t, func() {
		ctx.Table().AddDeclarable(ScopeID(999), "X", ctx.NewTypeAlias("X", types.NoTypeID, false))
	})
}

func TestValidateBuiltTable(t *testing.T) {
	ctx, _ := newTestContext(t)
	table := ctx.Table()
	b := table.Types.Builtins()

	m := ctx.DeclareModule("M")
	restore := ctx.EnterScope(m.Scope())
	if _, err := ctx.DeclareMacro(CallableSpec{Name: "Add", Signature: sigReturning(b.Int32, b.Int32, b.Int32)}); err != nil {
		t.Fatalf("declare macro: %v", err)
	}
	ctx.DeclareBuiltin(CallableSpec{Name: "B", Signature: sigReturning(b.Void)}, BuiltinStub)
	table.NewBlockScope(m.Scope(), span(0, 0))
	restore()

	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if mods := table.Modules(); len(mods) != 1 || mods[0] != m {
		t.Fatalf("unexpected modules: %v", mods)
	}
}

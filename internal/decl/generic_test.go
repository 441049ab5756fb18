package decl

import (
	"testing"

	"declc/internal/ast"
	"declc/internal/types"
)

func newIdentity(t *testing.T, ctx *Context) *Generic {
	t.Helper()
	return ctx.DeclareGeneric("Identity", &ast.GenericDecl{
		TypeParams: []string{"T"},
		Callable: ast.CallableDecl{
			Kind:   ast.CallableMacro,
			Name:   "Identity",
			Params: []ast.Param{{Name: "x", Type: ast.TypeExpr{Name: "T"}}},
			Return: ast.TypeExpr{Name: "T"},
		},
	})
}

func TestGenericSpecializationCache(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	g := newIdentity(t, ctx)

	if params := g.GenericParameters(); len(params) != 1 || params[0] != "T" {
		t.Fatalf("unexpected parameters %v", params)
	}
	if _, ok := g.GetSpecialization(types.Vector{b.Int32}); ok {
		t.Fatalf("empty cache returned a specialization")
	}

	m, err := ctx.NewMacro(CallableSpec{Name: "Identity", Signature: sigReturning(b.Int32, b.Int32)})
	if err != nil {
		t.Fatalf("new macro: %v", err)
	}
	g.AddSpecialization(types.Vector{b.Int32}, m)

	got, ok := g.GetSpecialization(types.Vector{b.Int32})
	if !ok || got != Callable(m) {
		t.Fatalf("cache miss after AddSpecialization")
	}
	if _, ok := g.GetSpecialization(types.Vector{b.Float64}); ok {
		t.Fatalf("unrelated vector hit the cache")
	}
	if _, ok := g.GetSpecialization(types.Vector{b.Int32, b.Int32}); ok {
		t.Fatalf("longer vector hit the cache")
	}
	if specs := g.Specializations(); len(specs) != 1 || !specs[0].TypeArgs.Equal(types.Vector{b.Int32}) {
		t.Fatalf("unexpected specialization list %+v", specs)
	}
}

func TestGenericCacheKeyIsStructural(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	g := newIdentity(t, ctx)
	rf := ctx.NewRuntimeFunction("Identity", sigReturning(b.Int32, b.Int32), false)

	args := types.Vector{b.Int32}
	g.AddSpecialization(args, rf)
	args[0] = b.Float64

	if _, ok := g.GetSpecialization(types.Vector{b.Int32}); !ok {
		t.Fatalf("cache keyed on a mutable caller slice")
	}
	if got := g.Specializations()[0].TypeArgs[0]; got != b.Int32 {
		t.Fatalf("stored type args alias the caller's slice")
	}
}

func TestGenericRejectsDuplicateAndNil(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.Table().Types.Builtins()
	g := newIdentity(t, ctx)
	rf := ctx.NewRuntimeFunction("Identity", sigReturning(b.Int32, b.Int32), false)

	g.AddSpecialization(types.Vector{b.Int32}, rf)
	mustPanic(t, func() { g.AddSpecialization(types.Vector{b.Int32}, rf) })
	mustPanic(t, func() { g.AddSpecialization(types.Vector{b.Float64}, nil) })
	if len(g.Specializations()) != 1 {
		t.Fatalf("rejected specializations were stored")
	}
}

func TestNewGenericRequiresDeclaration(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustPanic(t, func() { ctx.NewGeneric("G", nil) })
}

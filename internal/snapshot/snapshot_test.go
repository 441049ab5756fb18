package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"declc/internal/ast"
	"declc/internal/decl"
	"declc/internal/types"
)

func buildTable(t *testing.T) *decl.Table {
	t.Helper()
	table := decl.NewTable(decl.Hints{}, nil, nil)
	ctx := decl.NewContext(table, decl.ContextOptions{})
	b := table.Types.Builtins()

	ctx.DeclareTypeAlias("int32", b.Int32, false)
	m := ctx.DeclareModule("base")
	defer ctx.EnterScope(m.Scope())()
	ctx.DeclareExternConstant("kZero", b.Int32, "0")
	ctx.DeclareExternConstant("数", b.Int32, "1")
	g := ctx.DeclareGeneric("Identity", &ast.GenericDecl{TypeParams: []string{"T"}})
	rf := ctx.NewRuntimeFunction("Identity", decl.Signature{
		ParameterNames: []string{"x"},
		ParameterTypes: decl.ParameterTypes{Types: []types.TypeID{b.Int32}},
		ReturnType:     b.Int32,
	}, false)
	g.AddSpecialization(types.Vector{b.Int32}, rf)
	table.AddDeclarable(m.Scope(), "Identity", rf)
	return table
}

func TestBuildCopiesTable(t *testing.T) {
	table := buildTable(t)
	s := Build(table)
	if len(s.Scopes) != table.Scopes.Len() || len(s.Decls) != table.Decls.Len() {
		t.Fatalf("unexpected sizes %d/%d", len(s.Scopes), len(s.Decls))
	}
	var generic *Entry
	for i := range s.Decls {
		if s.Decls[i].Kind == "Generic" {
			generic = &s.Decls[i]
		}
	}
	if generic == nil || len(generic.Specializations) != 1 || generic.Specializations[0].TypeArgs != "int32" {
		t.Fatalf("unexpected generic entry %+v", generic)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := Build(buildTable(t))
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Decls) != len(s.Decls) || got.Decls[2].Description != s.Decls[2].Description {
		t.Fatalf("round trip lost data")
	}
}

func TestDecodeRejectsForeignSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Snapshot{Schema: Schema + 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Fatalf("expected schema error")
	}
}

func TestWriteTextAlignsWideNames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, Build(buildTable(t))); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "scope #2 module base") {
		t.Fatalf("missing module scope:\n%s", out)
	}
	var cols []int
	for _, line := range strings.Split(out, "\n") {
		if i := strings.Index(line, "const "); i >= 0 {
			cols = append(cols, runewidth.StringWidth(line[:i]))
		}
	}
	if len(cols) != 2 || cols[0] != cols[1] {
		t.Fatalf("descriptions not aligned (%v):\n%s", cols, out)
	}
}

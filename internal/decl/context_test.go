package decl

import (
	"errors"
	"strings"
	"testing"

	"declc/internal/diag"
	"declc/internal/source"
	"declc/internal/trace"
)

func TestEnterRestoresOnPanic(t *testing.T) {
	ctx, _ := newTestContext(t)
	m := ctx.DeclareModule("M")

	var err error
	func() {
		defer Recover(&err)
		defer ctx.Enter(m.Scope(), span(3, 4))()
		ctx.NewGeneric("broken", nil)
	}()

	if !IsInvariant(err) {
		t.Fatalf("expected invariant error, got %v", err)
	}
	if ctx.Scope() != ctx.Table().Root() {
		t.Fatalf("scope leaked after panic: %d", ctx.Scope())
	}
	if ctx.Pos() != (source.Span{}) {
		t.Fatalf("position leaked after panic: %v", ctx.Pos())
	}
}

func TestNestedEnterRestoresInOrder(t *testing.T) {
	ctx, _ := newTestContext(t)
	m := ctx.DeclareModule("M")
	block := ctx.Table().NewBlockScope(m.Scope(), span(0, 0))

	leaveModule := ctx.EnterScope(m.Scope())
	leaveBlock := ctx.EnterScope(block)
	if ctx.Scope() != block {
		t.Fatalf("expected block scope")
	}
	leaveBlock()
	if ctx.Scope() != m.Scope() {
		t.Fatalf("expected module scope after leaving block")
	}
	leaveModule()
	if ctx.Scope() != ctx.Table().Root() {
		t.Fatalf("expected root after leaving module")
	}
}

func TestEnterScopeRejectsUnknownScope(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustPanic(t, func() { ctx.EnterScope(NoScopeID) })
	mustPanic(t, func() { ctx.EnterScope(ScopeID(42)) })
}

func TestCurrentModule(t *testing.T) {
	ctx, _ := newTestContext(t)
	ie := mustPanic(t, func() { ctx.CurrentModule() })
	if ie.Op != "CurrentModule" {
		t.Fatalf("unexpected op %q", ie.Op)
	}

	m := ctx.DeclareModule("M")
	defer ctx.EnterScope(m.Scope())()
	block := ctx.Table().NewBlockScope(m.Scope(), span(0, 0))
	defer ctx.EnterScope(block)()

	if got := ctx.CurrentModule(); got != m {
		t.Fatalf("expected module M, got %v", got)
	}
}

func TestModulesDoNotNest(t *testing.T) {
	ctx, _ := newTestContext(t)
	m := ctx.DeclareModule("outer")
	defer ctx.EnterScope(m.Scope())()
	ie := mustPanic(t, func() { ctx.DeclareModule("inner") })
	if !strings.Contains(ie.Msg, "outer") {
		t.Fatalf("unexpected message %q", ie.Msg)
	}
}

func TestRecoverRepanicsForeignValues(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected foreign panic to propagate, got %v", r)
		}
	}()
	var err error
	func() {
		defer Recover(&err)
		panic("boom")
	}()
	t.Fatalf("unreachable")
}

func TestContextTracesDeclarations(t *testing.T) {
	table := NewTable(Hints{}, nil, nil)
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	ctx := NewContext(table, ContextOptions{Tracer: ring, Reporter: diag.NopReporter{}})

	m := ctx.DeclareModule("base")
	defer ctx.EnterScope(m.Scope())()
	ctx.DeclareExternConstant("kZero", table.Types.Builtins().Int32, "0")

	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Name != "constant:kZero" || events[1].Detail != "base" || events[1].Scope != trace.ScopeNode {
		t.Fatalf("unexpected event %+v", events[1])
	}
}

func TestRecoverLeavesNilErrorWithoutPanic(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
	}()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if IsInvariant(errors.New("plain")) {
		t.Fatalf("plain error classified as invariant")
	}
}

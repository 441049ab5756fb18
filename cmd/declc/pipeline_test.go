package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"declc/internal/diag"
	"declc/internal/snapshot"
)

const pipelineFile = `
[[module]]
name = "base"

  [[module.type]]
  name = "Smi"

  [[module.extern_const]]
  name = "kZero"
  type = "int32"
  value = "0"

  [[module.macro]]
  name = "Add"
  params = [{ name = "a", type = "int32" }, { name = "b", type = "int32" }]
  returns = "int32"
  body = "return a + b;"

[[module]]
name = "other"

  [[module.macro]]
  name = "Noop"
  body = "nop();"
`

func runTestPipeline(t *testing.T, content string) *pipelineResult {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base.decl.toml")
	writeFile(t, path, content)
	res, err := runPipeline(context.Background(), []string{path}, pipelineOptions{MaxDiagnostics: 50})
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	return res
}

func TestPipelineCleanInput(t *testing.T) {
	res := runTestPipeline(t, pipelineFile)
	if res.Bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", res.Bag.Items())
	}
	m, ok := res.Pass.Module("base")
	if !ok {
		t.Fatalf("module base not declared")
	}
	if !strings.Contains(m.Header(), "macro Add(") {
		t.Fatalf("header misses Add prototype:\n%s", m.Header())
	}
	if !strings.Contains(m.Header(), "type Smi extends object;") {
		t.Fatalf("header misses Smi:\n%s", m.Header())
	}
}

func TestPipelineReportsErrors(t *testing.T) {
	res := runTestPipeline(t, `
[[module]]
name = "base"

  [[module.macro]]
  name = "Bad"
  params = [{ name = "a", type = "Missing" }]
  body = "nop();"
`)
	if !res.Bag.HasErrors() {
		t.Fatalf("expected errors")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.DeclUnknownType {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %v, got %+v", diag.DeclUnknownType, res.Bag.Items())
	}
}

func TestPipelineMissingFile(t *testing.T) {
	res, err := runPipeline(context.Background(), []string{filepath.Join(t.TempDir(), "nope.decl.toml")}, pipelineOptions{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("expected an IO diagnostic")
	}
	if got := res.Bag.Items()[0].Code; got != diag.IOLoadFileError {
		t.Fatalf("expected %v, got %v", diag.IOLoadFileError, got)
	}
}

func TestPipelineCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.decl.toml")
	writeFile(t, path, pipelineFile)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runPipeline(ctx, []string{path}, pipelineOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWriteDumpOutlineFiltersModule(t *testing.T) {
	res := runTestPipeline(t, pipelineFile)
	table := res.Pass.Table()

	var buf bytes.Buffer
	if err := writeDump(&buf, table, "source", "other"); err != nil {
		t.Fatalf("writeDump: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "// module other") || strings.Contains(out, "// module base") {
		t.Fatalf("unexpected source outline:\n%s", out)
	}
	if !strings.Contains(out, "nop();") {
		t.Fatalf("source outline misses body:\n%s", out)
	}

	if err := writeDump(&buf, table, "header", "missing"); err == nil {
		t.Fatalf("expected unknown module error")
	}
}

func TestWriteDumpMsgpackDecodes(t *testing.T) {
	res := runTestPipeline(t, pipelineFile)
	var buf bytes.Buffer
	if err := writeDump(&buf, res.Pass.Table(), "msgpack", ""); err != nil {
		t.Fatalf("writeDump: %v", err)
	}
	snap, err := snapshot.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(snap.Decls) != res.Pass.Table().Decls.Len() {
		t.Fatalf("expected %d decls, got %d", res.Pass.Table().Decls.Len(), len(snap.Decls))
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(nil); got != 0 {
		t.Fatalf("nil: %d", got)
	}
	if got := exitCode(errHasErrors); got != 1 {
		t.Fatalf("errHasErrors: %d", got)
	}
}

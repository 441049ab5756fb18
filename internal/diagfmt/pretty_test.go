package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"declc/internal/diag"
	"declc/internal/source"
)

func sampleBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("base.decl.toml", []byte("[[module]]\nname = \"base\"\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.DeclUnknownType, source.Span{File: id, Start: 19, End: 23}, "unknown type \"base\"").
		WithNote(source.Span{File: id, Start: 0, End: 10}, "declared here"))
	bag.Add(diag.New(diag.SevWarning, diag.DeclMissingReturn, source.Span{File: id, Start: 0, End: 2}, "no return"))
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"base.decl.toml:2:9: ERROR DCL3002: unknown type \"base\"",
		"  name = \"base\"\n          ^~~~\n",
		"note: base.decl.toml:1:1: declared here",
		"WARNING DCL3006: no return",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colour codes in plain output")
	}
}

func TestPrettyMaxAndColor(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true, Max: 1})
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected colour codes:\n%q", out)
	}
	if !strings.Contains(out, "1 more diagnostics not shown") || strings.Contains(out, "no return") {
		t.Fatalf("max not applied:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || out.Diagnostics[0].Code != "DCL3002" || out.Diagnostics[0].Location.StartLine != 2 {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("notes missing")
	}
}

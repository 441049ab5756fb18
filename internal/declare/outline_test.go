package declare

import (
	"context"
	"strings"
	"testing"

	"declc/internal/decl"
	"declc/internal/diag"
)

func TestOutlineWritesModuleBuffers(t *testing.T) {
	p, _ := runPass(t, baseFile)
	if err := p.Outline(context.Background()); err != nil {
		t.Fatalf("outline: %v", err)
	}
	m, _ := p.Module("base")
	header, src := m.Header(), m.Source()

	for _, want := range []string{
		"macro Add(int32 a, int32 b): int32 labels Overflow;",
		"type Smi extends HeapObject;",
		"type Number = float64;",
		"macro Identity(int32 x): int32;",
		"extern const kMax: int32;",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header lacks %q:\n%s", want, header)
		}
	}
	for _, unwanted := range []string{"Push", "Throw", "kZero"} {
		if strings.Contains(header, unwanted) || strings.Contains(src, unwanted) {
			t.Errorf("external %s was outlined", unwanted)
		}
	}
	if !strings.Contains(src, "const kMax: int32 = (1 << 30);") || !strings.Contains(src, "  return a + b;") {
		t.Fatalf("unexpected source:\n%s", src)
	}
	if !m.HeaderStream().Finalized() || !m.SourceStream().Finalized() {
		t.Fatalf("buffers not finalized")
	}

	add := lookupOne[*decl.Macro](t, p, m.Scope(), "Add")
	if add.Returns() != 1 {
		t.Fatalf("expected 1 return, got %d", add.Returns())
	}
	mc := lookupOne[*decl.ModuleConstant](t, p, m.Scope(), "kMax")
	if !mc.IsEvaluated() {
		t.Fatalf("outline did not evaluate kMax")
	}

	if err := p.Outline(context.Background()); err == nil {
		t.Fatalf("expected error writing finalized buffers")
	}
}

func TestOutlineWarnsOnMissingReturn(t *testing.T) {
	content := `
[[module]]
name = "m"
  [[module.macro]]
  name = "NoReturn"
  returns = "int32"
  body = "Print(returned);"

  [[module.macro]]
  name = "Unit"
  body = "Print(1);"
`
	p, bag := runPass(t, content)
	if err := p.Outline(context.Background()); err != nil {
		t.Fatalf("outline: %v", err)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.DeclMissingReturn || items[0].Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostics %+v", items)
	}
	if !strings.Contains(items[0].Message, "NoReturn") {
		t.Fatalf("unexpected message %q", items[0].Message)
	}
}

func TestEvaluatorFreezesValue(t *testing.T) {
	p, _ := runPass(t, baseFile)
	m, _ := p.Module("base")
	mc := lookupOne[*decl.ModuleConstant](t, p, m.Scope(), "kMax")

	first := p.Evaluator().Value(mc)
	second := p.Evaluator().Value(mc)
	if first != second || first.Text != "(1 << 30)" {
		t.Fatalf("unexpected values %+v / %+v", first, second)
	}
}

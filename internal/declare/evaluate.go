package declare

import (
	"strings"

	"declc/internal/ast"
	"declc/internal/decl"
)

// Evaluator computes module-constant values on first request.
type Evaluator struct {
	builder *ast.Builder
}

func NewEvaluator(builder *ast.Builder) *Evaluator {
	return &Evaluator{builder: builder}
}

// Value returns the value of mc, computing and freezing it on the first
// call. Later calls return the frozen value.
func (e *Evaluator) Value(mc *decl.ModuleConstant) decl.Result {
	if r, ok := mc.Value(); ok {
		return r
	}
	text := ""
	if expr := e.builder.Exprs.Get(mc.Body()); expr != nil {
		text = strings.TrimSpace(expr.Text)
	}
	if needsParens(text) {
		text = "(" + text + ")"
	}
	r := decl.Result{Type: mc.Type(), Text: text}
	mc.SetValue(r)
	return r
}

// needsParens reports whether text is more than a single operand.
func needsParens(text string) bool {
	if text == "" || (strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")")) {
		return false
	}
	return strings.ContainsAny(text, " +-*/%<>&|^!?:")
}
